package client

import "context"

// GetGenerate reports whether the daemon is generating coins.
func (c *Client) GetGenerate(ctx context.Context) (bool, error) {
	var on bool
	err := c.CallResult(ctx, "getgenerate", &on)
	return on, err
}

// SetGenerate turns generation on or off. maxProc limits the number of
// processors used; DefaultMaxProc (-1) means no limit.
func (c *Client) SetGenerate(ctx context.Context, generate bool, maxProc int) error {
	if maxProc < -1 {
		return invalid("setgenerate", "maxproc", "must be >= -1")
	}
	return c.CallResult(ctx, "setgenerate", nil, generate, maxProc)
}

// GetHashesPerSec returns a recent hashing rate measurement.
func (c *Client) GetHashesPerSec(ctx context.Context) (int64, error) {
	var n int64
	err := c.CallResult(ctx, "gethashespersec", &n)
	return n, err
}

// GetWork returns block data to work on.
func (c *Client) GetWork(ctx context.Context) (*WorkResult, error) {
	var work WorkResult
	if err := c.CallResult(ctx, "getwork", &work); err != nil {
		return nil, err
	}
	return &work, nil
}

// SubmitWork tries to solve a block with data and reports whether it worked.
func (c *Client) SubmitWork(ctx context.Context, data string) (bool, error) {
	if err := requireNonBlank("getwork", "data", data); err != nil {
		return false, err
	}
	var solved bool
	err := c.CallResult(ctx, "getwork", &solved, data)
	return solved, err
}
