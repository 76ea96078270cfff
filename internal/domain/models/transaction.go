package models

// TxHandle identifies a submitted, not yet confirmed transaction
type TxHandle struct {
	Hash  string
	Nonce uint64
}

// Receipt is the terminal state of a mined transaction
type Receipt struct {
	TxHash          string
	BlockNumber     uint64
	GasUsed         uint64
	Succeeded       bool
	ContractAddress string
}

// ContractCall is a state-changing call on a deployed contract
type ContractCall struct {
	To     string
	Method string
	Args   []string
}
