package client

import (
	"context"
	"encoding/base64"
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/zklogin/internal/client/models"
	"github.com/ethereum/go-ethereum/rpc"
)

// SuiCoinType is the gas coin type used for balances and transfers.
const SuiCoinType = "0x2::sui::SUI"

// maxCoinsPerPage bounds the coin listing used to fund a transfer.
const maxCoinsPerPage = 50

// Ledger is the blockchain collaborator.
type Ledger interface {
	CurrentEpoch(ctx context.Context) (uint64, error)
	Balance(ctx context.Context, addr string) (uint64, error)
	// BuildTransfer resolves gas and objects and returns the serialized
	// transaction ready to be signed.
	BuildTransfer(ctx context.Context, sender string, intent models.TxIntent) ([]byte, error)
	Execute(ctx context.Context, txBytes []byte, signature string) (*models.Receipt, error)
}

// RPCLedger talks JSON-RPC 2.0 to a full node.
type RPCLedger struct {
	rpc     *rpc.Client
	timeout time.Duration
}

func DialLedger(ctx context.Context, url string, timeout time.Duration) (*RPCLedger, error) {
	c, err := rpc.DialContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("dial ledger: %w", err)
	}
	return NewRPCLedger(c, timeout), nil
}

func NewRPCLedger(c *rpc.Client, timeout time.Duration) *RPCLedger {
	return &RPCLedger{rpc: c, timeout: timeout}
}

func (l *RPCLedger) Close() {
	l.rpc.Close()
}

func (l *RPCLedger) call(ctx context.Context, op string, result any, method string, args ...any) error {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	if err := l.rpc.CallContext(ctx, result, method, args...); err != nil {
		return serviceError(op, err)
	}
	return nil
}

func parseU64(op, field, v string) (uint64, error) {
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, serviceError(op, fmt.Errorf("bad %s %q: %w", field, v, err))
	}
	return n, nil
}

func (l *RPCLedger) CurrentEpoch(ctx context.Context) (uint64, error) {
	var state struct {
		Epoch string `json:"epoch"`
	}
	if err := l.call(ctx, "current epoch", &state, "suix_getLatestSuiSystemState"); err != nil {
		return 0, err
	}
	return parseU64("current epoch", "epoch", state.Epoch)
}

func (l *RPCLedger) Balance(ctx context.Context, addr string) (uint64, error) {
	var bal struct {
		TotalBalance string `json:"totalBalance"`
	}
	if err := l.call(ctx, "balance", &bal, "suix_getBalance", addr, SuiCoinType); err != nil {
		return 0, err
	}
	return parseU64("balance", "totalBalance", bal.TotalBalance)
}

type coin struct {
	CoinObjectID string `json:"coinObjectId"`
	Balance      string `json:"balance"`
}

// BuildTransfer picks coins (largest first as listed by the node) until they
// cover amount plus gas budget, then asks the node to build a paySui
// transaction.
func (l *RPCLedger) BuildTransfer(ctx context.Context, sender string, intent models.TxIntent) ([]byte, error) {
	var page struct {
		Data []coin `json:"data"`
	}
	if err := l.call(ctx, "list coins", &page, "suix_getCoins", sender, SuiCoinType, nil, maxCoinsPerPage); err != nil {
		return nil, err
	}

	need := intent.Amount + intent.GasBudget
	var (
		ids []string
		sum uint64
	)
	for _, c := range page.Data {
		if sum >= need {
			break
		}
		b, err := parseU64("list coins", "balance", c.Balance)
		if err != nil {
			return nil, err
		}
		ids = append(ids, c.CoinObjectID)
		sum += b
	}
	if sum < need {
		return nil, fmt.Errorf("%w: have %d, need %d", ErrInsufficientGas, sum, need)
	}

	var built struct {
		TxBytes string `json:"txBytes"`
	}
	err := l.call(ctx, "build transfer", &built, "unsafe_paySui",
		sender,
		ids,
		[]string{intent.Recipient},
		[]string{strconv.FormatUint(intent.Amount, 10)},
		strconv.FormatUint(intent.GasBudget, 10),
	)
	if err != nil {
		return nil, err
	}

	txBytes, err := base64.StdEncoding.DecodeString(built.TxBytes)
	if err != nil {
		return nil, serviceError("build transfer", fmt.Errorf("decode txBytes: %w", err))
	}
	return txBytes, nil
}

type executeOptions struct {
	ShowEffects bool `json:"showEffects"`
}

func (l *RPCLedger) Execute(ctx context.Context, txBytes []byte, signature string) (*models.Receipt, error) {
	var res struct {
		Digest  string `json:"digest"`
		Effects struct {
			Status struct {
				Status string `json:"status"`
				Error  string `json:"error"`
			} `json:"status"`
		} `json:"effects"`
	}
	err := l.call(ctx, "execute", &res, "sui_executeTransactionBlock",
		base64.StdEncoding.EncodeToString(txBytes),
		[]string{signature},
		executeOptions{ShowEffects: true},
		"WaitForLocalExecution",
	)
	if err != nil {
		return nil, err
	}

	st := res.Effects.Status
	if st.Status != "success" {
		return nil, serviceError("execute", fmt.Errorf("transaction %s failed: %s %s", res.Digest, st.Status, st.Error))
	}
	return &models.Receipt{Digest: res.Digest, Status: st.Status}, nil
}
