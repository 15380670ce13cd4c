package client

import (
	"context"
	"sort"
)

// SendToAddress sends amount coins from the wallet to address and returns
// the transaction id. comment and commentTo are stored in the wallet only;
// empty ones are not sent.
func (c *Client) SendToAddress(ctx context.Context, address string, amount float64, comment, commentTo string) (string, error) {
	const method = "sendtoaddress"
	if err := requireNonBlank(method, "address", address); err != nil {
		return "", err
	}
	amt, err := checkAmount(method, "amount", amount)
	if err != nil {
		return "", err
	}

	args := append([]any{address, amt}, comments(comment, commentTo)...)
	var txid string
	err = c.CallResult(ctx, method, &txid, args...)
	return txid, err
}

// Move transfers amount between two accounts of the wallet. An empty
// fromAccount moves from the wallet's default account.
func (c *Client) Move(ctx context.Context, fromAccount, toAccount string, amount float64, minConf int, comment string) (bool, error) {
	const method = "move"
	amt, err := checkAmount(method, "amount", amount)
	if err != nil {
		return false, err
	}
	if err := requireMinConf(method, minConf); err != nil {
		return false, err
	}

	args := []any{fromAccount, toAccount, amt, minConf}
	if !blank(comment) {
		args = append(args, comment)
	}
	var ok bool
	err = c.CallResult(ctx, method, &ok, args...)
	return ok, err
}

// SendFrom sends amount from fromAccount to toAddress and returns the
// transaction id. The account needs amount coins with minConf confirmations.
func (c *Client) SendFrom(ctx context.Context, fromAccount, toAddress string, amount float64, minConf int, comment, commentTo string) (string, error) {
	const method = "sendfrom"
	if err := requireNonBlank(method, "fromaccount", fromAccount); err != nil {
		return "", err
	}
	if err := requireNonBlank(method, "toaddress", toAddress); err != nil {
		return "", err
	}
	amt, err := checkAmount(method, "amount", amount)
	if err != nil {
		return "", err
	}
	if err := requireMinConf(method, minConf); err != nil {
		return "", err
	}

	args := append([]any{fromAccount, toAddress, amt, minConf}, comments(comment, commentTo)...)
	var txid string
	err = c.CallResult(ctx, method, &txid, args...)
	return txid, err
}

// SendMany pays every address in amounts from fromAccount in one transaction
// and returns its id.
func (c *Client) SendMany(ctx context.Context, fromAccount string, amounts map[string]float64, minConf int, comment string) (string, error) {
	const method = "sendmany"
	if err := requireNonBlank(method, "fromaccount", fromAccount); err != nil {
		return "", err
	}
	if err := requireMinConf(method, minConf); err != nil {
		return "", err
	}
	if len(amounts) == 0 {
		return "", invalid(method, "amounts", "must name at least one recipient")
	}

	// Sorted so the first bad entry reported is stable.
	addrs := make([]string, 0, len(amounts))
	for addr := range amounts {
		addrs = append(addrs, addr)
	}
	sort.Strings(addrs)

	sendTo := make(map[string]float64, len(amounts))
	for _, addr := range addrs {
		if blank(addr) {
			return "", invalid(method, "amounts", "must not contain a blank address")
		}
		amt, err := checkAmount(method, "amounts["+addr+"]", amounts[addr])
		if err != nil {
			return "", err
		}
		sendTo[addr] = amt.ToBTC()
	}

	args := []any{fromAccount, sendTo, minConf}
	if !blank(comment) {
		args = append(args, comment)
	}
	var txid string
	err := c.CallResult(ctx, method, &txid, args...)
	return txid, err
}

// comments returns the optional trailing comment arguments. commentTo needs
// the comment slot, so a lone commentTo sends an empty comment before it.
func comments(comment, commentTo string) []any {
	switch {
	case !blank(commentTo):
		return []any{comment, commentTo}
	case !blank(comment):
		return []any{comment}
	default:
		return nil
	}
}
