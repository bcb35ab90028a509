package types

import (
	"fmt"

	"github.com/blocto/solana-go-sdk/rpc"
)

// Commitment 表示交易的确认深度，按 processed < confirmed < finalized 排序
type Commitment string

const (
	CommitmentProcessed Commitment = "processed"
	CommitmentConfirmed Commitment = "confirmed"
	CommitmentFinalized Commitment = "finalized"
)

func ParseCommitment(s string) (Commitment, error) {
	c := Commitment(s)
	if c.rank() == 0 {
		return "", fmt.Errorf("unknown commitment %q, want processed|confirmed|finalized", s)
	}
	return c, nil
}

func (c Commitment) rank() int {
	switch c {
	case CommitmentProcessed:
		return 1
	case CommitmentConfirmed:
		return 2
	case CommitmentFinalized:
		return 3
	default:
		return 0
	}
}

// Reaches 判断当前确认级别是否已达到 target
func (c Commitment) Reaches(target Commitment) bool {
	r := c.rank()
	return r > 0 && r >= target.rank()
}

func (c Commitment) ToRpc() rpc.Commitment {
	return rpc.Commitment(c)
}
