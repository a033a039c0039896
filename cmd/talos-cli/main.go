// Package main provides the talos-cli command line interface for encrypting
// and decrypting files with the Talos cipher.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/mitchellh/go-homedir"

	talos "github.com/BackendStack21/talos-go"
	"github.com/BackendStack21/talos-go/automaton"
	"github.com/BackendStack21/talos-go/keys"
	"github.com/BackendStack21/talos-go/protocol"
)

const appName = "talos-cli"

const defaultConfigFile = ".talos.toml"

// tomlConfig optionally overrides the protocol constants. Born and Dies must
// both be present (9 booleans each) to replace the default rule; the grid
// files are read as init-grid texts.
type tomlConfig struct {
	SGridFile string
	TGridFile string
	Born      []bool
	Dies      []bool
}

// cipherConfig is the resolved protocol configuration.
type cipherConfig struct {
	rule         automaton.Rule
	sGrid, tGrid string
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch command := os.Args[1]; command {
	case "help", "--help", "-h":
		printUsage()
	case "version", "--version", "-v":
		fmt.Printf("%s version %s\n", appName, talos.Version)
	case "encrypt":
		handleCrypt(os.Args[2:], true)
	case "decrypt":
		handleCrypt(os.Args[2:], false)
	case "keygen":
		handleKeygen(os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func handleCrypt(args []string, encrypting bool) {
	name := "decrypt"
	if encrypting {
		name = "encrypt"
	}
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	keyArg := fs.String("key", "", "key: a decimal 32-bit unsigned integer or a passphrase")
	out := fs.String("out", "", "output file (defaults to stdout)")
	configPath := fs.String("config", "", "config file (defaults to ~/"+defaultConfigFile+" when present)")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "%s expects exactly one input file\n", name)
		fs.Usage()
		os.Exit(1)
	}

	key, err := resolveKey(*keyArg, encrypting)
	if err != nil {
		fatal(err)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fatal(err)
	}

	p, err := protocol.NewCustom(key, cfg.rule, cfg.sGrid, cfg.tGrid)
	if err != nil {
		fatal(err)
	}

	input, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		fatal(err)
	}

	var output []byte
	if encrypting {
		output = p.Encrypt(input)
	} else {
		output = p.Decrypt(input)
	}

	if *out == "" {
		if _, err := os.Stdout.Write(output); err != nil {
			fatal(err)
		}
		return
	}
	if err := os.WriteFile(*out, output, 0o600); err != nil {
		fatal(err)
	}
}

func handleKeygen(args []string) {
	fs := flag.NewFlagSet("keygen", flag.ExitOnError)
	passphrase := fs.String("passphrase", "", "derive the key from a passphrase instead of randomly")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *passphrase != "" {
		fmt.Println(keys.FromPassphrase(*passphrase))
		return
	}
	key, err := keys.Random()
	if err != nil {
		fatal(err)
	}
	fmt.Println(key)
}

// resolveKey turns the -key argument into a key. Decryption requires one;
// encryption without one generates a random key and reports it so the
// ciphertext stays recoverable.
func resolveKey(arg string, encrypting bool) (uint32, error) {
	if arg != "" {
		return keys.Parse(arg), nil
	}
	if !encrypting {
		return 0, fmt.Errorf("no decryption key provided")
	}
	key, err := keys.Random()
	if err != nil {
		return 0, err
	}
	fmt.Fprintf(os.Stderr, "Using key %d\n", key)
	return key, nil
}

// loadConfig resolves the protocol configuration. An explicitly named config
// file must exist; the default ~/.talos.toml is optional.
func loadConfig(path string) (cipherConfig, error) {
	cfg := cipherConfig{
		rule:  protocol.DefaultRule,
		sGrid: protocol.SInitGrid,
		tGrid: protocol.TInitGrid,
	}

	explicit := path != ""
	if !explicit {
		home, err := homedir.Dir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(home, defaultConfigFile)
	}

	var fileCfg tomlConfig
	if _, err := toml.DecodeFile(path, &fileCfg); err != nil {
		if !explicit && os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if fileCfg.SGridFile != "" {
		text, err := os.ReadFile(fileCfg.SGridFile)
		if err != nil {
			return cfg, err
		}
		cfg.sGrid = string(text)
	}
	if fileCfg.TGridFile != "" {
		text, err := os.ReadFile(fileCfg.TGridFile)
		if err != nil {
			return cfg, err
		}
		cfg.tGrid = string(text)
	}
	if len(fileCfg.Born) > 0 || len(fileCfg.Dies) > 0 {
		if len(fileCfg.Born) != 9 || len(fileCfg.Dies) != 9 {
			return cfg, fmt.Errorf("config rule must list 9 Born and 9 Dies values")
		}
		copy(cfg.rule.Born[:], fileCfg.Born)
		copy(cfg.rule.Dies[:], fileCfg.Dies)
	}
	return cfg, nil
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
	os.Exit(1)
}

func printUsage() {
	fmt.Printf(`%s - Talos cellular-automaton cipher CLI

USAGE:
    %s <COMMAND> [OPTIONS] [INPUT]

COMMANDS:
    encrypt     Encrypt a file (random key generated when -key is omitted)
    decrypt     Decrypt a file (-key is required)
    keygen      Print a fresh random key, or derive one from a passphrase
    version     Show version information
    help        Show this help message

EXAMPLES:
    # Encrypt with a random key (key is reported on stderr)
    %s encrypt -out secret.enc secret.txt

    # Encrypt with a passphrase-derived key
    %s encrypt -key "my passphrase" -out secret.enc secret.txt

    # Decrypt
    %s decrypt -key 123456789 -out secret.txt secret.enc

    # Generate a key up front
    %s keygen

CONFIG:
    An optional TOML file (~/%s or -config FILE) may override the
    automaton rule (Born, Dies: 9 booleans each) and the initial grid
    texts (SGridFile, TGridFile).
`, appName, appName, appName, appName, appName, appName, defaultConfigFile)
}
