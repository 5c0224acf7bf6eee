package sdk

// Env describes the invocation the contract is running for.
type Env struct {
	// TxId identifies the invocation in logs.
	TxId string
	// Caller is the authenticated signer. Signature checks happen before the contract runs.
	Caller Pubkey
	// Timestamp is the unix time the invocation started.
	Timestamp int64
}
