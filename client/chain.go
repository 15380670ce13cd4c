package client

import "context"

// GetBlockCount returns the number of blocks in the longest chain.
func (c *Client) GetBlockCount(ctx context.Context) (int64, error) {
	var n int64
	err := c.CallResult(ctx, "getblockcount", &n)
	return n, err
}

// GetBlockNumber returns the number of the latest block in the longest chain.
func (c *Client) GetBlockNumber(ctx context.Context) (int64, error) {
	var n int64
	err := c.CallResult(ctx, "getblocknumber", &n)
	return n, err
}

// GetConnectionCount returns the number of peers the daemon is connected to.
func (c *Client) GetConnectionCount(ctx context.Context) (int64, error) {
	var n int64
	err := c.CallResult(ctx, "getconnectioncount", &n)
	return n, err
}

// GetDifficulty returns the proof-of-work difficulty as a multiple of the
// minimum difficulty.
func (c *Client) GetDifficulty(ctx context.Context) (float64, error) {
	var d float64
	err := c.CallResult(ctx, "getdifficulty", &d)
	return d, err
}

// GetInfo returns the daemon's status: version, balance, block height,
// connections and the like.
func (c *Client) GetInfo(ctx context.Context) (*InfoResult, error) {
	var info InfoResult
	if err := c.CallResult(ctx, "getinfo", &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// Help lists the daemon's commands, or describes command when it is not empty.
func (c *Client) Help(ctx context.Context, command string) (string, error) {
	var text string
	var err error
	if blank(command) {
		err = c.CallResult(ctx, "help", &text)
	} else {
		err = c.CallResult(ctx, "help", &text, command)
	}
	return text, err
}

// Stop asks the daemon to shut down and returns its farewell message.
func (c *Client) Stop(ctx context.Context) (string, error) {
	var msg string
	err := c.CallResult(ctx, "stop", &msg)
	return msg, err
}

// ValidateAddress asks the daemon whether address is a valid Litecoin address.
func (c *Client) ValidateAddress(ctx context.Context, address string) (*ValidateAddressResult, error) {
	if err := requireNonBlank("validateaddress", "address", address); err != nil {
		return nil, err
	}
	var res ValidateAddressResult
	if err := c.CallResult(ctx, "validateaddress", &res, address); err != nil {
		return nil, err
	}
	return &res, nil
}
