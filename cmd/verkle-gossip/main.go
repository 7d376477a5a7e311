// This is free and unencumbered software released into the public domain.
//
// Anyone is free to copy, modify, publish, use, compile, sell, or
// distribute this software, either in source code form or as a compiled
// binary, for any purpose, commercial or non-commercial, and by any
// means.
//
// In jurisdictions that recognize copyright laws, the author or authors
// of this software dedicate any and all copyright interest in the
// software to the public domain. We make this dedication for the benefit
// of the public at large and to the detriment of our heirs and
// successors. We intend this dedication to be an overt act of
// relinquishment in perpetuity of all present and future rights to this
// software under copyright law.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND,
// EXPRESS OR IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF
// MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT.
// IN NO EVENT SHALL THE AUTHORS BE LIABLE FOR ANY CLAIM, DAMAGES OR
// OTHER LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE,
// ARISING FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR
// OTHER DEALINGS IN THE SOFTWARE.
//
// For more information, please refer to <https://unlicense.org>

// Command verkle-gossip drives blocks from a beacon node through the
// (stubbed) EVM block processor and gossips the resulting trie changes,
// shard by shard, to a Portal Network client. See spec.md §6 and
// SPEC_FULL.md §6 for the external-interface contract.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/portal-network/verkle-bridge/chain"
	"github.com/portal-network/verkle-bridge/genesis"
)

const (
	defaultBeaconRPCURL = "http://localhost:9596"
	defaultPortalRPCURL = "http://localhost:8545"
	defaultGenesisFile  = "genesis.json"
	genesisBlockNumber  = 0
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		slots        uint64
		beaconRPCURL string
		portalRPCURL string
		genesisFile  string
	)

	cmd := &cobra.Command{
		Use:   "verkle-gossip",
		Short: "Gossip verkle trie bundles and fragments to the Portal Network",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), slots, beaconRPCURL, portalRPCURL, genesisFile)
		},
	}

	cmd.Flags().Uint64Var(&slots, "slots", 0, "number of beacon slots to gossip after genesis")
	cmd.Flags().StringVar(&beaconRPCURL, "beacon-rpc-url", defaultBeaconRPCURL, "beacon node REST API base URL")
	cmd.Flags().StringVar(&portalRPCURL, "portal-rpc-url", defaultPortalRPCURL, "Portal client gossip endpoint base URL")
	cmd.Flags().StringVar(&genesisFile, "genesis-file", defaultGenesisFile, "path to the genesis allocation JSON file")

	return cmd
}

func run(ctx context.Context, slots uint64, beaconRPCURL, portalRPCURL, genesisFile string) error {
	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer logger.Sync()

	logger.Info("initializing",
		zap.Uint64("slots", slots),
		zap.String("beaconRPCURL", beaconRPCURL),
		zap.String("portalRPCURL", portalRPCURL),
	)

	genesisData, err := os.ReadFile(genesisFile)
	if err != nil {
		return fmt.Errorf("reading genesis file %s: %w", genesisFile, err)
	}
	genesisConfig, err := genesis.ReadGenesis(genesisData)
	if err != nil {
		return fmt.Errorf("parsing genesis file %s: %w", genesisFile, err)
	}
	genesisDiff, err := genesis.GenerateStateDiff(genesisConfig)
	if err != nil {
		return fmt.Errorf("generating genesis state diff: %w", err)
	}

	processor := chain.NewFakeBlockProcessor()
	fetcher := chain.NewHTTPBeaconBlockFetcher(beaconRPCURL)
	portal := chain.NewHTTPPortalGossipClient(portalRPCURL)
	gossiper := NewGossiper(processor, fetcher, portal, logger)

	if err := gossiper.GossipGenesis(ctx, [32]byte{}, genesisDiff); err != nil {
		return fmt.Errorf("gossiping genesis: %w", err)
	}
	logger.Info("genesis applied", zap.String("root", fmt.Sprintf("%x", processor.StateTrie().RootHashBytes())))

	for slot := uint64(1); slot <= slots; slot++ {
		if err := gossiper.GossipSlot(ctx, slot); err != nil {
			return fmt.Errorf("gossiping slot %d: %w", slot, err)
		}
	}

	logger.Info("finished gossiping", zap.Uint64("slots", slots))
	return nil
}
