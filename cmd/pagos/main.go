// Command pagos runs a single gateway operation from the shell. It exists
// for smoke-testing driver credentials: configure a driver through
// PAGOS_-prefixed environment variables (or a .env file), then charge,
// refund, or inspect a transaction and read the normalized result as JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/pagos-go/pagos"
	"github.com/pagos-go/pagos/config"
	_ "github.com/pagos-go/pagos/gateways/all"
)

func main() {
	amount := flag.Int64("amount", 1000, "charge amount in the currency's minor unit")
	payment := flag.String("payment", "success", "payment token, card reference, or descriptor")
	action := flag.String("action", "charge", "operation to run: charge, refund, or drivers")
	reference := flag.String("reference", "", "transaction reference (refund only)")
	timeout := flag.Duration("timeout", 30*time.Second, "overall deadline for the call")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := cfg.Logger.NewLogger()
	slog.SetDefault(logger)

	factory := pagos.NewFactory(pagos.WithLogger(logger))

	if *action == "drivers" {
		for _, name := range factory.Drivers() {
			fmt.Println(name)
		}
		return
	}

	client, err := factory.Make(cfg.Gateway)
	if err != nil {
		logger.Error("could not build gateway", "driver", cfg.Primary.Driver, "error", err)
		os.Exit(1)
	}

	logger.Info("running gateway operation",
		"driver", client.Driver(),
		"gateway", client.Gateway().DisplayName(),
		"action", *action,
	)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	charges, err := client.Charges()
	if err != nil {
		logger.Error("driver has no charge support", "error", err)
		os.Exit(1)
	}

	var response *pagos.Response
	switch *action {
	case "charge":
		response, err = charges.Create(ctx, *amount, *payment, pagos.Options{})
	case "refund":
		if *reference == "" {
			logger.Error("refund requires -reference")
			os.Exit(1)
		}
		response, err = charges.Refund(ctx, *amount, *reference, pagos.Options{})
	default:
		logger.Error("unknown action", "action", *action)
		os.Exit(1)
	}
	if err != nil {
		// A raised error is a caller or transport problem, never a
		// provider decline; declines come back as a Response.
		logger.Error("gateway call failed", "error", err)
		os.Exit(1)
	}

	printResponse(response)
	if !response.Success() {
		os.Exit(2)
	}
}

func printResponse(r *pagos.Response) {
	out, err := json.MarshalIndent(map[string]any{
		"success":       r.Success(),
		"redirect":      r.IsRedirect(),
		"test":          r.Test(),
		"reference":     r.Reference(),
		"message":       r.Message(),
		"authorization": r.Authorization(),
		"type":          r.Type(),
		"status":        r.Status(),
		"error_code":    r.ErrorCode(),
		"data":          r.Data(),
	}, "", "  ")
	if err != nil {
		slog.Error("could not encode response", "error", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
