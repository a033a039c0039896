package protocol

import "github.com/BackendStack21/talos-go/automaton"

// DefaultRule is the fixed transition rule shared by both automata. It is a
// protocol-level constant, chosen once: dead cells are born with 2-6 alive
// neighbors, live cells die with 0, 1 or 5-8.
var DefaultRule = automaton.Rule{
	Born: [9]bool{false, false, true, true, true, true, true, false, false},
	Dies: [9]bool{true, true, false, false, false, true, true, true, true},
}

// SInitGrid is the fixed 16x16 initial grid of the shift automaton. Every
// alphabet symbol appears, so every key bit has at least one seeding
// position; '#' and '.' cells are key-independent.
const SInitGrid = `YHU.5I#52MVV7C3Y
OOXNG7P.HD.BM#HQ
5BF#3DGVSI#XE#JB
NQ.TF7T7ITX3P.WS
DWRNW7KD.RUYYLHN
O#LJLEW6#5ZBW2P4
CZB#XDZ.RFVU2UHG
K24XCEJ3YEUP.QBZ
#E4IK42XMYULFKL5
M6#WJ6PVWYN.IOKM
M4HHA#.KNKEFPZ7M
G.SQG#64TQFI.S#J
R6OD.SOXA3A6J2ZF
L7TI43AT2EJNA5LA
VR#GS3TUCAC#6.O#
.CGQRPS5VCZRQBD.
`

// TInitGrid is the fixed 16x16 initial grid of the transpose automaton.
const TInitGrid = `3PZRJMQ#H2DIL#ME
WTQK6NTKLQC2Z6O.
VXN4.7RNA.6IZDDA
67AMMRWE3UOMUEML
VKIIL4B3TV.F.ZLO
#4UNOQE5HOCKSP2G
LS#VF5Y.#XCHERQD
#I2C6K2I#6VA#QF7
PGY34WHCSG5E2PNS
U.35S#D.VBE7.TYB
U6.VHJX4BY#5J.75
#LAP#F.SWF#WRCK.
ZGCZTPGRF75QJ47X
.JBUFYYXW3I2BM#3
.TABRNXJDT4PJGNY
Z.GOO#AHKSHDUW#X
`
