// Command hashwires is a small CLI exercising the core library's
// gen/commit/prove/verify surface, grounded in the original
// implementation's own hashchain/octopus command-line prototypes
// (create/verify/genkey/sign subcommands).
package main

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"math/big"
	"os"
	"strconv"

	"github.com/urfave/cli/v2"

	hashwires "github.com/hashwires/hashwires"
	"github.com/hashwires/hashwires/hashfunc"
	"github.com/hashwires/hashwires/signed"
)

const defaultAlgorithm = hashfunc.SHA256

func main() {
	app := &cli.App{
		Name:    "hashwires",
		Usage:   "generate and verify HashWires range proofs",
		Version: "v0.1.0",
		Commands: []*cli.Command{
			{
				Name:  "genseed",
				Usage: "generate a random 32-byte master seed",
				Action: func(c *cli.Context) error {
					return genSeed()
				},
			},
			{
				Name:      "commit",
				Usage:     "commit to a value. Args: seed(hex) value base maxBits",
				ArgsUsage: "seed value base maxBits",
				Action: func(c *cli.Context) error {
					return commit(c)
				},
			},
			{
				Name:      "prove",
				Usage:     "prove a committed value dominates a threshold. Args: seed value base maxBits threshold",
				ArgsUsage: "seed value base maxBits threshold",
				Action: func(c *cli.Context) error {
					return prove(c)
				},
			},
			{
				Name:      "verify",
				Usage:     "verify a proof. Args: commitment(hex) proof(hex) threshold",
				ArgsUsage: "commitment proof threshold",
				Action: func(c *cli.Context) error {
					return verify(c)
				},
			},
			{
				Name:  "genkey",
				Usage: "generate an Ed25519 issuer keypair for signing commitments",
				Action: func(c *cli.Context) error {
					return genKey()
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func genSeed() error {
	seed := make([]byte, 32)
	if _, err := rand.Read(seed); err != nil {
		return err
	}
	fmt.Println(hex.EncodeToString(seed))
	return nil
}

func genKey() error {
	pk, sk, err := signed.GenerateKey()
	if err != nil {
		return err
	}
	fmt.Println("public key: ", hex.EncodeToString(pk))
	fmt.Println("private key:", hex.EncodeToString(sk))
	return nil
}

func commit(c *cli.Context) error {
	if c.NArg() != 4 {
		return errors.New("usage: commit seed value base maxBits")
	}
	seed, value, base, maxBits, err := parseSecretArgs(c)
	if err != nil {
		return err
	}
	secret, err := hashwires.Gen(seed, value)
	if err != nil {
		return err
	}
	cm, err := secret.Commit(base, maxBits)
	if err != nil {
		return err
	}
	fmt.Println(hex.EncodeToString(cm.Serialize()))
	return nil
}

func prove(c *cli.Context) error {
	if c.NArg() != 5 {
		return errors.New("usage: prove seed value base maxBits threshold")
	}
	seed, value, base, maxBits, err := parseSecretArgs(c)
	if err != nil {
		return err
	}
	threshold, ok := new(big.Int).SetString(c.Args().Get(4), 10)
	if !ok {
		return errors.New("invalid threshold")
	}
	secret, err := hashwires.Gen(seed, value)
	if err != nil {
		return err
	}
	proof, err := secret.Prove(base, maxBits, threshold)
	if err != nil {
		return err
	}
	fmt.Println(hex.EncodeToString(proof.Serialize()))
	return nil
}

func verify(c *cli.Context) error {
	if c.NArg() != 3 {
		return errors.New("usage: verify commitment proof threshold")
	}
	commitmentBytes, err := hex.DecodeString(c.Args().Get(0))
	if err != nil {
		return err
	}
	proofBytes, err := hex.DecodeString(c.Args().Get(1))
	if err != nil {
		return err
	}
	threshold, ok := new(big.Int).SetString(c.Args().Get(2), 10)
	if !ok {
		return errors.New("invalid threshold")
	}

	cm, err := hashwires.DeserializeCommitment(commitmentBytes, defaultAlgorithm)
	if err != nil {
		return err
	}
	p := hashwires.Params{Base: cm.Base, MaxBits: cm.MaxBits}
	if err := p.Validate(); err != nil {
		return err
	}
	proof, err := hashwires.DeserializeProof(proofBytes, p.K(), defaultAlgorithm)
	if err != nil {
		return err
	}

	if err := cm.Verify(proof, threshold); err != nil {
		fmt.Println("verification failed:", err)
		return err
	}
	fmt.Println("verification succeeded")
	return nil
}

func parseSecretArgs(c *cli.Context) (seed []byte, value *big.Int, base, maxBits int, err error) {
	seed, err = hex.DecodeString(c.Args().Get(0))
	if err != nil {
		return nil, nil, 0, 0, err
	}
	value, ok := new(big.Int).SetString(c.Args().Get(1), 10)
	if !ok {
		return nil, nil, 0, 0, errors.New("invalid value")
	}
	base, err = strconv.Atoi(c.Args().Get(2))
	if err != nil {
		return nil, nil, 0, 0, err
	}
	maxBits, err = strconv.Atoi(c.Args().Get(3))
	if err != nil {
		return nil, nil, 0, 0, err
	}
	return seed, value, base, maxBits, nil
}
