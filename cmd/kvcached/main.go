package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/kvring/kvring"
)

var (
	nodeID       string
	peersFlag    string
	replicationN int
	durableURL   string
	legacyURL    string
	healthAddr   string
	vnodeCount   int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "kvcached",
		Short: "A fault-tolerant, peer-to-peer, in-memory key-value cluster node",
		Long: `kvcached runs a single node of a kvring cluster: a fixed,
consistent-hash-partitioned ring of peers that coordinate GET/SET/DELETE
requests, write through a durable store, and read through a legacy
data source on a cache miss.`,
		RunE: runNode,
	}

	rootCmd.Flags().StringVar(&nodeID, "node-id", envOr("NODE_ID", ""), "this node's own address (host:port); env NODE_ID")
	rootCmd.Flags().StringVar(&peersFlag, "peers", envOr("CACHE_PEERS", ""), "comma-separated list of every node's address, including this one; env CACHE_PEERS")
	rootCmd.Flags().IntVar(&replicationN, "replication-n", envIntOr("REPLICATION_N", 3), "number of nodes (including the owner) holding each key; env REPLICATION_N")
	rootCmd.Flags().StringVar(&durableURL, "postgres-url", envOr("POSTGRES_URL", ""), "Postgres connection URL for the durable store; empty disables durability; env POSTGRES_URL")
	rootCmd.Flags().StringVar(&legacyURL, "legacy-api-url", envOr("LEGACY_API_URL", ""), "base URL of the legacy data source; empty disables read-through; env LEGACY_API_URL")
	rootCmd.Flags().StringVar(&healthAddr, "health-addr", envOr("HEALTH_ADDR", ":8080"), "address to serve /healthz and /readyz on; empty disables it")
	rootCmd.Flags().IntVar(&vnodeCount, "vnodes", 64, "number of virtual nodes per physical node")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func runNode(cmd *cobra.Command, args []string) error {
	if nodeID == "" {
		return fmt.Errorf("--node-id (or NODE_ID) is required")
	}
	peers := splitPeers(peersFlag)
	if len(peers) == 0 {
		return fmt.Errorf("--peers (or CACHE_PEERS) is required and must include this node's own address")
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	node, err := kvring.NewNode(kvring.Config{
		NodeID:     nodeID,
		Peers:      peers,
		DurableURL: durableURL,
		LegacyURL:  legacyURL,
		HealthAddr: healthAddr,
	},
		kvring.WithVNodeCount(vnodeCount),
		kvring.WithReplicationFactor(replicationN),
		kvring.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("failed to build node: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("kvcached: received signal, shutting down gracefully", "signal", sig.String())
		cancel()
	}()

	logger.Info("kvcached: starting", "node_id", nodeID, "peers", peers, "vnodes", vnodeCount, "replication_n", replicationN)

	startedAt := time.Now()
	if err := node.Start(ctx); err != nil {
		return fmt.Errorf("node stopped with error: %w", err)
	}
	logger.Info("kvcached: stopped", "uptime", time.Since(startedAt))
	return nil
}

func splitPeers(raw string) []string {
	var peers []string
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			peers = append(peers, p)
		}
	}
	return peers
}
