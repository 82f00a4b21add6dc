// deploytool decodes deploy payloads from their hex wire form and prints
// the human-readable and debug renderings. It is a diagnostic aid for log
// spelunking; nothing in the library depends on it.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/log"
	"github.com/spf13/cobra"

	"github.com/clydemeng/deploykit/core/engine"
	"github.com/clydemeng/deploykit/types"
)

var rootCmd = &cobra.Command{
	Use:   "deploytool",
	Short: "Inspect deploy payloads",
	Long: `Inspect the binary payloads of ledger deploys.

All commands take hex input, with or without a 0x prefix.

Examples:
  deploytool item 0x05040000000100000001
  deploytool args 0x00000000
  deploytool deploy "$(cat deploy.hex)"`,
	SilenceUsage: true,
}

var itemCmd = &cobra.Command{
	Use:   "item <hex>",
	Short: "Decode one executable deploy item",
	Args:  cobra.ExactArgs(1),
	RunE:  runItem,
}

var argsCmd = &cobra.Command{
	Use:   "args <hex>",
	Short: "Decode a runtime argument set",
	Args:  cobra.ExactArgs(1),
	RunE:  runArgs,
}

var deployCmd = &cobra.Command{
	Use:   "deploy <hex>",
	Short: "Decode a full deploy (header, payment, session)",
	Args:  cobra.ExactArgs(1),
	RunE:  runDeploy,
}

func decodeHexArg(arg string) ([]byte, error) {
	s := strings.TrimSpace(arg)
	if !strings.HasPrefix(s, "0x") {
		s = "0x" + s
	}
	return hexutil.Decode(s)
}

func runItem(cmd *cobra.Command, args []string) error {
	buf, err := decodeHexArg(args[0])
	if err != nil {
		return fmt.Errorf("bad hex input: %w", err)
	}
	item, err := engine.DecodeItem(buf)
	if err != nil {
		return fmt.Errorf("decoding deploy item: %w", err)
	}

	fmt.Println(item.String())
	fmt.Println(item.DebugString())
	printRuntimeArgs(item)
	return nil
}

func printRuntimeArgs(item engine.ExecutableDeployItem) {
	decoded, err := item.DecodeArgs()
	if err != nil {
		// the argument buffer is opaque until decoded; a stored-away item
		// can legitimately carry args this tool cannot parse
		log.Warn("args buffer not decodable", "err", err)
		return
	}
	fmt.Printf("args (%d):\n", decoded.Len())
	for _, name := range decoded.Names() {
		v, _ := decoded.Get(name)
		fmt.Printf("  %s: %s %s\n", name, v.Type, hexutil.Encode(v.Data))
	}
}

func runArgs(cmd *cobra.Command, args []string) error {
	buf, err := decodeHexArg(args[0])
	if err != nil {
		return fmt.Errorf("bad hex input: %w", err)
	}
	decoded, err := types.DecodeRuntimeArgs(buf)
	if err != nil {
		return fmt.Errorf("decoding runtime args: %w", err)
	}
	for _, name := range decoded.Names() {
		v, _ := decoded.Get(name)
		fmt.Printf("%s: %s %s\n", name, v.Type, hexutil.Encode(v.Data))
	}
	return nil
}

func runDeploy(cmd *cobra.Command, args []string) error {
	buf, err := decodeHexArg(args[0])
	if err != nil {
		return fmt.Errorf("bad hex input: %w", err)
	}
	d, err := engine.DecodeDeploy(buf)
	if err != nil {
		return fmt.Errorf("decoding deploy: %w", err)
	}

	h := d.Header()
	fmt.Printf("deploy %s\n", d.Hash().Hex())
	fmt.Printf("  account:    %s\n", h.Account.Hex())
	fmt.Printf("  timestamp:  %d\n", h.Timestamp)
	fmt.Printf("  ttl:        %dms\n", h.TTL)
	fmt.Printf("  gas price:  %d\n", h.GasPrice)
	fmt.Printf("  body hash:  %s\n", h.BodyHash.Hex())
	fmt.Printf("  chain:      %s\n", h.ChainName)
	fmt.Printf("  payment:    %s\n", d.Payment())
	fmt.Printf("  session:    %s\n", d.Session())
	return nil
}

func main() {
	log.SetDefault(log.NewLogger(log.NewTerminalHandlerWithLevel(os.Stderr, log.LevelWarn, true)))

	rootCmd.AddCommand(itemCmd, argsCmd, deployCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
