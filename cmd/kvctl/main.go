// Command kvctl is a thin client for a kvring cluster: it dials a single
// node's client-facing gRPC surface and issues one GET, SET, or DELETE.
// The cluster-facing client library itself is out of scope for this
// repository (spec.md §1); kvctl exists only to exercise that boundary.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/kvring/kvring/cachepb"
)

var (
	addr    string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "kvctl",
		Short: "A thin client for a kvring cluster",
	}
	rootCmd.PersistentFlags().StringVar(&addr, "addr", "127.0.0.1:7000", "address of any node in the cluster")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 2*time.Second, "request timeout")

	rootCmd.AddCommand(getCmd(), setCmd(), deleteCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func dial() (cachepb.CacheClient, func(), error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to dial %s: %w", addr, err)
	}
	return cachepb.NewCacheClient(conn), func() { conn.Close() }, nil
}

func getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a value by key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, closeFn, err := dial()
			if err != nil {
				return err
			}
			defer closeFn()

			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			reply, err := client.Get(ctx, &cachepb.GetRequest{Key: args[0]})
			if err != nil {
				return err
			}
			if !reply.Found {
				fmt.Println("(not found)")
				return nil
			}
			fmt.Println(string(reply.Value))
			return nil
		},
	}
}

func setCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a value by key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, closeFn, err := dial()
			if err != nil {
				return err
			}
			defer closeFn()

			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			reply, err := client.Set(ctx, &cachepb.SetRequest{Key: args[0], Value: []byte(args[1])})
			if err != nil {
				return err
			}
			if !reply.Ok {
				return fmt.Errorf("set failed: %s", reply.Err)
			}
			fmt.Println("OK")
			return nil
		},
	}
}

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <key>",
		Short: "Delete a value by key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, closeFn, err := dial()
			if err != nil {
				return err
			}
			defer closeFn()

			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			reply, err := client.Delete(ctx, &cachepb.DeleteRequest{Key: args[0]})
			if err != nil {
				return err
			}
			if !reply.Ok {
				return fmt.Errorf("delete failed")
			}
			fmt.Println("OK")
			return nil
		},
	}
}
