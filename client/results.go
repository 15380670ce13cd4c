package client

// Result shapes of the daemon's commands. Fields the daemon leaves out stay
// at their zero value; keys not listed here are ignored.

// InfoResult is returned by getinfo.
type InfoResult struct {
	Version         int32   `json:"version"`
	ProtocolVersion int32   `json:"protocolversion"`
	WalletVersion   int32   `json:"walletversion"`
	Balance         float64 `json:"balance"`
	Blocks          int64   `json:"blocks"`
	TimeOffset      int64   `json:"timeoffset"`
	Connections     int32   `json:"connections"`
	Proxy           string  `json:"proxy"`
	Generate        bool    `json:"generate"`
	GenProcLimit    int32   `json:"genproclimit"`
	HashesPerSec    int64   `json:"hashespersec"`
	Difficulty      float64 `json:"difficulty"`
	TestNet         bool    `json:"testnet"`
	KeypoolOldest   int64   `json:"keypoololdest"`
	KeypoolSize     int32   `json:"keypoolsize"`
	UnlockedUntil   int64   `json:"unlocked_until"`
	PayTxFee        float64 `json:"paytxfee"`
	RelayFee        float64 `json:"relayfee"`
	Errors          string  `json:"errors"`
}

// ValidateAddressResult is returned by validateaddress. IsMine and Address
// are only set for valid addresses.
type ValidateAddressResult struct {
	IsValid bool   `json:"isvalid"`
	Address string `json:"address"`
	IsMine  bool   `json:"ismine"`
	Account string `json:"account"`
}

// TransactionResult is returned by gettransaction.
type TransactionResult struct {
	Amount        float64             `json:"amount"`
	Fee           float64             `json:"fee"`
	Confirmations int64               `json:"confirmations"`
	BlockHash     string              `json:"blockhash"`
	BlockIndex    int64               `json:"blockindex"`
	BlockTime     int64               `json:"blocktime"`
	TxID          string              `json:"txid"`
	Time          int64               `json:"time"`
	TimeReceived  int64               `json:"timereceived"`
	Message       string              `json:"message"`
	To            string              `json:"to"`
	Details       []TransactionDetail `json:"details"`
}

// TransactionDetail is one wallet-relevant output of a transaction.
type TransactionDetail struct {
	Account  string  `json:"account"`
	Address  string  `json:"address"`
	Category string  `json:"category"` // "send", "receive", "generate", ...
	Amount   float64 `json:"amount"`
	Fee      float64 `json:"fee"`
}

// ListTransactionsResult is one entry of listtransactions.
type ListTransactionsResult struct {
	Account       string  `json:"account"`
	Address       string  `json:"address"`
	Category      string  `json:"category"`
	Amount        float64 `json:"amount"`
	Fee           float64 `json:"fee"` // sends only
	Confirmations int64   `json:"confirmations"`
	BlockHash     string  `json:"blockhash"`
	BlockIndex    int64   `json:"blockindex"`
	BlockTime     int64   `json:"blocktime"`
	TxID          string  `json:"txid"`
	Time          int64   `json:"time"`
	TimeReceived  int64   `json:"timereceived"`
	Comment       string  `json:"comment"`
	OtherAccount  string  `json:"otheraccount"` // "move" entries
}

// ReceivedByAddressResult is one entry of listreceivedbyaddress.
type ReceivedByAddressResult struct {
	Address       string  `json:"address"`
	Account       string  `json:"account"`
	Amount        float64 `json:"amount"`
	Confirmations int64   `json:"confirmations"`
}

// ReceivedByAccountResult is one entry of listreceivedbyaccount.
type ReceivedByAccountResult struct {
	Account       string  `json:"account"`
	Amount        float64 `json:"amount"`
	Confirmations int64   `json:"confirmations"`
}

// ReceivedByLabelResult is one entry of listreceivedbylabel.
type ReceivedByLabelResult struct {
	Label         string  `json:"label"`
	Amount        float64 `json:"amount"`
	Confirmations int64   `json:"confirmations"`
}

// WorkResult is what getwork hands out to miners.
type WorkResult struct {
	Midstate string `json:"midstate"` // hash state after the first half of data
	Data     string `json:"data"`
	Hash1    string `json:"hash1"`
	Target   string `json:"target"` // little endian
}
