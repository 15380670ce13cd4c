package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/urfave/cli"

	"litecoin-rpc/client"
)

func printRespJSON(w io.Writer, resp any) error {
	b, err := json.MarshalIndent(resp, "", "    ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

// parseArg reads a positional argument as JSON when it is valid JSON, so
// true, [1,2] and {"a":1} keep their shape. Anything else is passed as text
// and left to parameter coercion.
func parseArg(s string) any {
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return s
	}
	return v
}

var callCommand = cli.Command{
	Name:      "call",
	Category:  "Raw",
	Usage:     "Send any command to the daemon.",
	ArgsUsage: "method [args...]",
	Description: `
	Calls method with the given positional arguments and prints the raw
	result. Arguments that parse as JSON keep their type, e.g.

	    ltc-cli call listreceivedbyaddress 6 true
	`,
	Action: call,
}

func call(ctx *cli.Context) error {
	if ctx.NArg() == 0 {
		return cli.ShowCommandHelp(ctx, "call")
	}

	ctxc, cancel := getContext()
	defer cancel()
	c, cleanUp, err := getClient(ctx)
	if err != nil {
		return err
	}
	defer cleanUp()

	args := make([]any, 0, ctx.NArg()-1)
	for _, a := range ctx.Args().Tail() {
		args = append(args, parseArg(a))
	}
	resp, err := c.Call(ctxc, ctx.Args().First(), args...)
	if err != nil {
		return err
	}
	return printRespJSON(ctx.App.Writer, resp)
}

var canConnectCommand = cli.Command{
	Name:     "canconnect",
	Category: "Raw",
	Usage:    "Check that the daemon answers getinfo.",
	Action:   canConnect,
}

func canConnect(ctx *cli.Context) error {
	ctxc, cancel := getContext()
	defer cancel()
	c, cleanUp, err := getClient(ctx)
	if err != nil {
		return err
	}
	defer cleanUp()

	ok, reason := c.CanConnect(ctxc)
	out := map[string]any{"connected": ok}
	if !ok {
		out["error"] = reason
	}
	return printRespJSON(ctx.App.Writer, out)
}

var getInfoCommand = cli.Command{
	Name:     "getinfo",
	Category: "Chain",
	Usage:    "Returns basic information about the daemon.",
	Action:   getInfo,
}

func getInfo(ctx *cli.Context) error {
	ctxc, cancel := getContext()
	defer cancel()
	c, cleanUp, err := getClient(ctx)
	if err != nil {
		return err
	}
	defer cleanUp()

	resp, err := c.GetInfo(ctxc)
	if err != nil {
		return err
	}
	return printRespJSON(ctx.App.Writer, resp)
}

var getBlockCountCommand = cli.Command{
	Name:     "getblockcount",
	Category: "Chain",
	Usage:    "Returns the number of blocks in the longest chain.",
	Action:   getBlockCount,
}

func getBlockCount(ctx *cli.Context) error {
	ctxc, cancel := getContext()
	defer cancel()
	c, cleanUp, err := getClient(ctx)
	if err != nil {
		return err
	}
	defer cleanUp()

	count, err := c.GetBlockCount(ctxc)
	if err != nil {
		return err
	}
	return printRespJSON(ctx.App.Writer, count)
}

var getBalanceCommand = cli.Command{
	Name:      "getbalance",
	Category:  "Wallet",
	Usage:     "Returns the wallet balance, or one account's balance.",
	ArgsUsage: "[account]",
	Flags: []cli.Flag{
		cli.IntFlag{
			Name:  "minconf",
			Value: client.DefaultMinConf,
			Usage: "only count transactions with at least this many confirmations",
		},
	},
	Action: getBalance,
}

func getBalance(ctx *cli.Context) error {
	ctxc, cancel := getContext()
	defer cancel()
	c, cleanUp, err := getClient(ctx)
	if err != nil {
		return err
	}
	defer cleanUp()

	var balance float64
	if ctx.NArg() > 0 {
		balance, err = c.GetAccountBalance(ctxc, ctx.Args().First(), ctx.Int("minconf"))
	} else {
		balance, err = c.GetBalance(ctxc)
	}
	if err != nil {
		return err
	}
	return printRespJSON(ctx.App.Writer, map[string]float64{"balance": balance})
}

var getNewAddressCommand = cli.Command{
	Name:      "getnewaddress",
	Category:  "Wallet",
	Usage:     "Returns a new receiving address.",
	ArgsUsage: "[account]",
	Action:    getNewAddress,
}

func getNewAddress(ctx *cli.Context) error {
	ctxc, cancel := getContext()
	defer cancel()
	c, cleanUp, err := getClient(ctx)
	if err != nil {
		return err
	}
	defer cleanUp()

	addr, err := c.GetNewAddress(ctxc, ctx.Args().First())
	if err != nil {
		return err
	}
	return printRespJSON(ctx.App.Writer, map[string]string{"address": addr})
}

var validateAddressCommand = cli.Command{
	Name:      "validateaddress",
	Category:  "Chain",
	Usage:     "Returns information about an address.",
	ArgsUsage: "address",
	Action:    validateAddress,
}

func validateAddress(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return cli.ShowCommandHelp(ctx, "validateaddress")
	}

	ctxc, cancel := getContext()
	defer cancel()
	c, cleanUp, err := getClient(ctx)
	if err != nil {
		return err
	}
	defer cleanUp()

	resp, err := c.ValidateAddress(ctxc, ctx.Args().First())
	if err != nil {
		return err
	}
	return printRespJSON(ctx.App.Writer, resp)
}

var sendToAddressCommand = cli.Command{
	Name:      "sendtoaddress",
	Category:  "Wallet",
	Usage:     "Send coins to an address.",
	ArgsUsage: "address amount",
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  "comment",
			Usage: "what the transaction is for, stored in the wallet",
		},
		cli.StringFlag{
			Name:  "commentto",
			Usage: "who the coins were sent to, stored in the wallet",
		},
	},
	Action: sendToAddress,
}

func sendToAddress(ctx *cli.Context) error {
	if ctx.NArg() != 2 {
		return cli.ShowCommandHelp(ctx, "sendtoaddress")
	}

	amount, err := strconv.ParseFloat(strings.TrimSpace(ctx.Args().Get(1)), 64)
	if err != nil {
		return fmt.Errorf("unable to decode amount: %w", err)
	}

	ctxc, cancel := getContext()
	defer cancel()
	c, cleanUp, err := getClient(ctx)
	if err != nil {
		return err
	}
	defer cleanUp()

	txid, err := c.SendToAddress(ctxc, ctx.Args().First(), amount,
		ctx.String("comment"), ctx.String("commentto"))
	if err != nil {
		return err
	}
	return printRespJSON(ctx.App.Writer, map[string]string{"txid": txid})
}

var getTransactionCommand = cli.Command{
	Name:      "gettransaction",
	Category:  "Wallet",
	Usage:     "Returns details of a wallet transaction.",
	ArgsUsage: "txid",
	Action:    getTransaction,
}

func getTransaction(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return cli.ShowCommandHelp(ctx, "gettransaction")
	}

	ctxc, cancel := getContext()
	defer cancel()
	c, cleanUp, err := getClient(ctx)
	if err != nil {
		return err
	}
	defer cleanUp()

	tx, err := c.GetTransaction(ctxc, ctx.Args().First())
	if err != nil {
		return err
	}
	return printRespJSON(ctx.App.Writer, tx)
}

var listTransactionsCommand = cli.Command{
	Name:      "listtransactions",
	Category:  "Wallet",
	Usage:     "List the most recent transactions of an account.",
	ArgsUsage: "[account]",
	Flags: []cli.Flag{
		cli.IntFlag{
			Name:  "count",
			Value: client.DefaultListCount,
			Usage: "the number of transactions to return",
		},
		cli.IntFlag{
			Name:  "from",
			Usage: "the number of most recent transactions to skip",
		},
	},
	Action: listTransactions,
}

func listTransactions(ctx *cli.Context) error {
	ctxc, cancel := getContext()
	defer cancel()
	c, cleanUp, err := getClient(ctx)
	if err != nil {
		return err
	}
	defer cleanUp()

	txs, err := c.ListTransactions(ctxc, ctx.Args().First(), ctx.Int("count"), ctx.Int("from"))
	if err != nil {
		return err
	}
	return printRespJSON(ctx.App.Writer, txs)
}
