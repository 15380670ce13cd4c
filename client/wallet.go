package client

import "context"

// BackupWallet copies the wallet file to destination, a directory or a path
// with file name, on the daemon's host.
func (c *Client) BackupWallet(ctx context.Context, destination string) error {
	if err := requireNonBlank("backupwallet", "destination", destination); err != nil {
		return err
	}
	return c.CallResult(ctx, "backupwallet", nil, destination)
}

// GetBalance returns the wallet's total available balance.
func (c *Client) GetBalance(ctx context.Context) (float64, error) {
	var balance float64
	err := c.CallResult(ctx, "getbalance", &balance)
	return balance, err
}

// GetAccountBalance returns the balance of account counting only
// transactions with at least minConf confirmations. "" is the default
// account and "*" all accounts.
func (c *Client) GetAccountBalance(ctx context.Context, account string, minConf int) (float64, error) {
	if err := requireMinConf("getbalance", minConf); err != nil {
		return 0, err
	}
	var balance float64
	err := c.CallResult(ctx, "getbalance", &balance, account, minConf)
	return balance, err
}

// GetAccount returns the account address belongs to.
func (c *Client) GetAccount(ctx context.Context, address string) (string, error) {
	return c.addressString(ctx, "getaccount", address)
}

// GetLabel returns the label of address.
//
// Deprecated: daemons since 0.3.17 call labels accounts; use GetAccount.
func (c *Client) GetLabel(ctx context.Context, address string) (string, error) {
	return c.addressString(ctx, "getlabel", address)
}

func (c *Client) addressString(ctx context.Context, method, address string) (string, error) {
	if err := requireNonBlank(method, "address", address); err != nil {
		return "", err
	}
	var s string
	err := c.CallResult(ctx, method, &s, address)
	return s, err
}

// SetAccount files address under account. An empty account removes it from
// any account.
func (c *Client) SetAccount(ctx context.Context, address, account string) error {
	if err := requireNonBlank("setaccount", "address", address); err != nil {
		return err
	}
	return c.CallResult(ctx, "setaccount", nil, address, account)
}

// SetLabel labels address.
//
// Deprecated: use SetAccount.
func (c *Client) SetLabel(ctx context.Context, address, label string) error {
	if err := requireNonBlank("setlabel", "address", address); err != nil {
		return err
	}
	return c.CallResult(ctx, "setlabel", nil, address, label)
}

// GetNewAddress returns a new receiving address, credited to account when it
// is not empty.
func (c *Client) GetNewAddress(ctx context.Context, account string) (string, error) {
	var addr string
	var err error
	if blank(account) {
		err = c.CallResult(ctx, "getnewaddress", &addr)
	} else {
		err = c.CallResult(ctx, "getnewaddress", &addr, account)
	}
	return addr, err
}

// GetAccountAddress returns the current receiving address of account,
// creating both if needed.
func (c *Client) GetAccountAddress(ctx context.Context, account string) (string, error) {
	if err := requireNonBlank("getaccountaddress", "account", account); err != nil {
		return "", err
	}
	var addr string
	err := c.CallResult(ctx, "getaccountaddress", &addr, account)
	return addr, err
}

// GetAddressesByAccount lists the addresses of account. Unknown accounts give
// an empty list.
func (c *Client) GetAddressesByAccount(ctx context.Context, account string) ([]string, error) {
	if err := requireNonBlank("getaddressesbyaccount", "account", account); err != nil {
		return nil, err
	}
	var addrs []string
	if err := c.CallResult(ctx, "getaddressesbyaccount", &addrs, account); err != nil {
		return nil, err
	}
	return addrs, nil
}

// GetReceivedByAddress returns the total received by address in transactions
// with at least minConf confirmations.
func (c *Client) GetReceivedByAddress(ctx context.Context, address string, minConf int) (float64, error) {
	return c.received(ctx, "getreceivedbyaddress", "address", address, minConf)
}

// GetReceivedByAccount returns the total received by the addresses of account.
func (c *Client) GetReceivedByAccount(ctx context.Context, account string, minConf int) (float64, error) {
	return c.received(ctx, "getreceivedbyaccount", "account", account, minConf)
}

// GetReceivedByLabel returns the total received by the addresses with label.
//
// Deprecated: use GetReceivedByAccount.
func (c *Client) GetReceivedByLabel(ctx context.Context, label string, minConf int) (float64, error) {
	return c.received(ctx, "getreceivedbylabel", "label", label, minConf)
}

func (c *Client) received(ctx context.Context, method, name, value string, minConf int) (float64, error) {
	if err := requireMinConf(method, minConf); err != nil {
		return 0, err
	}
	if err := requireNonBlank(method, name, value); err != nil {
		return 0, err
	}
	var total float64
	err := c.CallResult(ctx, method, &total, value, minConf)
	return total, err
}

// ListReceivedByAddress reports what each wallet address has received.
// includeEmpty adds addresses that never received anything.
func (c *Client) ListReceivedByAddress(ctx context.Context, minConf int, includeEmpty bool) ([]ReceivedByAddressResult, error) {
	var res []ReceivedByAddressResult
	if err := c.listReceived(ctx, "listreceivedbyaddress", &res, minConf, includeEmpty); err != nil {
		return nil, err
	}
	return res, nil
}

// ListReceivedByAccount reports what each account has received.
func (c *Client) ListReceivedByAccount(ctx context.Context, minConf int, includeEmpty bool) ([]ReceivedByAccountResult, error) {
	var res []ReceivedByAccountResult
	if err := c.listReceived(ctx, "listreceivedbyaccount", &res, minConf, includeEmpty); err != nil {
		return nil, err
	}
	return res, nil
}

// ListReceivedByLabel reports what each label has received.
//
// Deprecated: use ListReceivedByAccount.
func (c *Client) ListReceivedByLabel(ctx context.Context, minConf int, includeEmpty bool) ([]ReceivedByLabelResult, error) {
	var res []ReceivedByLabelResult
	if err := c.listReceived(ctx, "listreceivedbylabel", &res, minConf, includeEmpty); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *Client) listReceived(ctx context.Context, method string, dst any, minConf int, includeEmpty bool) error {
	if err := requireMinConf(method, minConf); err != nil {
		return err
	}
	return c.CallResult(ctx, method, dst, minConf, includeEmpty)
}

// GetTransaction looks up a wallet transaction by its 64 hex digit id.
func (c *Client) GetTransaction(ctx context.Context, txid string) (*TransactionResult, error) {
	if err := txID("gettransaction", txid); err != nil {
		return nil, err
	}
	var tx TransactionResult
	if err := c.CallResult(ctx, "gettransaction", &tx, txid); err != nil {
		return nil, err
	}
	return &tx, nil
}

// ListTransactions returns up to count transactions of account, skipping the
// first from. account may be "" (default account) or "*" (all accounts).
func (c *Client) ListTransactions(ctx context.Context, account string, count, from int) ([]ListTransactionsResult, error) {
	if count < 0 {
		return nil, invalid("listtransactions", "count", "must be >= 0")
	}
	if from < 0 {
		return nil, invalid("listtransactions", "from", "must be >= 0")
	}
	var txs []ListTransactionsResult
	if err := c.CallResult(ctx, "listtransactions", &txs, account, count, from); err != nil {
		return nil, err
	}
	return txs, nil
}

// ListAccounts maps every account to its balance at minConf confirmations.
func (c *Client) ListAccounts(ctx context.Context, minConf int) (map[string]float64, error) {
	if err := requireMinConf("listaccounts", minConf); err != nil {
		return nil, err
	}
	accounts := map[string]float64{}
	if err := c.CallResult(ctx, "listaccounts", &accounts, minConf); err != nil {
		return nil, err
	}
	return accounts, nil
}
