package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/plexsphere/tunnelctl/internal/wireguard"
)

var keygenPubkey bool

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate a WireGuard key pair",
	Long: "Print a new private key and its public key. With --pubkey a private key\n" +
		"is read from stdin and only its public key is printed.",
	Args: cobra.NoArgs,
	RunE: runKeygen,
}

func init() {
	keygenCmd.Flags().BoolVar(&keygenPubkey, "pubkey", false, "derive the public key of a private key read from stdin")
	rootCmd.AddCommand(keygenCmd)
}

func runKeygen(cmd *cobra.Command, _ []string) error {
	w := cmd.OutOrStdout()

	if keygenPubkey {
		priv, err := readPrivateKey(cmd)
		if err != nil {
			return fmt.Errorf("tunnelctl keygen: %w", err)
		}
		pub, err := wireguard.PublicKeyFor(priv)
		if err != nil {
			return fmt.Errorf("tunnelctl keygen: %w", err)
		}
		fmt.Fprintln(w, pub)
		return nil
	}

	kp, err := wireguard.GenerateKeypair()
	if err != nil {
		return fmt.Errorf("tunnelctl keygen: %w", err)
	}
	fmt.Fprintf(w, "PrivateKey = %s\n", kp.EncodePrivateKey())
	fmt.Fprintf(w, "PublicKey  = %s\n", kp.EncodePublicKey())
	return nil
}

// readPrivateKey reads one line from stdin. On a terminal the key is read
// without echo.
func readPrivateKey(cmd *cobra.Command) (string, error) {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(cmd.ErrOrStderr(), "Private key: ")
		key, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("read private key: %w", err)
		}
		return string(key), nil
	}

	sc := bufio.NewScanner(in)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return "", errors.New("no private key on stdin")
	}
	return sc.Text(), nil
}
