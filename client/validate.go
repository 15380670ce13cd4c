package client

import (
	"math"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

const (
	DefaultMinConf   = 1
	DefaultMaxProc   = -1 // no processor limit
	DefaultListCount = 10
)

func requireNonBlank(method, name, value string) error {
	if blank(value) {
		return invalid(method, name, "must not be blank")
	}
	return nil
}

func requireMinConf(method string, minConf int) error {
	if minConf < 0 {
		return invalid(method, "minconf", "must be >= 0")
	}
	return nil
}

// checkAmount validates a coin amount and rounds it to whole satoshis.
func checkAmount(method, name string, value float64) (btcutil.Amount, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, invalid(method, name, "must be a finite number")
	}
	amt, err := btcutil.NewAmount(value)
	if err != nil {
		return 0, invalid(method, name, "must be a valid amount")
	}
	if amt <= 0 {
		if value > 0 {
			return 0, invalid(method, name, "must be at least 1 satoshi")
		}
		return 0, invalid(method, name, "must be > 0")
	}
	return amt, nil
}

// txID accepts exactly 64 hexadecimal characters.
func txID(method, id string) error {
	if len(id) != chainhash.MaxHashStringSize {
		return invalid(method, "txid", "must be 64 hexadecimal characters")
	}
	if _, err := chainhash.NewHashFromStr(id); err != nil {
		return invalid(method, "txid", "must be 64 hexadecimal characters")
	}
	return nil
}
