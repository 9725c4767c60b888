// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ava-labs/avalanchego/api/metrics"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/ava-labs/groupsavings/asset"
	"github.com/ava-labs/groupsavings/auth"
	"github.com/ava-labs/groupsavings/chain"
	"github.com/ava-labs/groupsavings/codec"
	"github.com/ava-labs/groupsavings/config"
	"github.com/ava-labs/groupsavings/custody"
	"github.com/ava-labs/groupsavings/factory"
	"github.com/ava-labs/groupsavings/ledger"
	"github.com/ava-labs/groupsavings/state"
	"github.com/ava-labs/groupsavings/storage"
	"github.com/ava-labs/groupsavings/trace"
	"github.com/ava-labs/groupsavings/utils"
)

// simulation wires a ledger, its custody accounts and a reference token to
// one chain.
type simulation struct {
	log      logging.Logger
	keys     *keystore
	ownerKey string
	decimals uint8

	tracer  io.Closer
	chain   *chain.Chain
	token   *asset.Token
	custody *custody.Service
	ledger  *ledger.Ledger
	owner   codec.Address
}

func openDatabase(cfg *config.Config, gatherer metrics.MultiGatherer) (state.Database, error) {
	if cfg.InMemory {
		return state.NewMemoryDatabase(), nil
	}
	return storage.New(cfg.Pebble, cfg.DataDir, "state", gatherer)
}

func newSimulation(
	ctx context.Context,
	log logging.Logger,
	cfg *config.Config,
	keys *keystore,
	ownerName string,
	gatherer metrics.MultiGatherer,
) (*simulation, error) {
	db, err := openDatabase(cfg, gatherer)
	if err != nil {
		return nil, err
	}
	tracer, err := trace.New(&cfg.Trace)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	chainRegistry := prometheus.NewRegistry()
	c, err := chain.New(log, tracer, db, chainRegistry)
	if err != nil {
		_ = tracer.Close()
		_ = db.Close()
		return nil, err
	}
	ledgerRegistry := prometheus.NewRegistry()
	if err := firstErr(
		gatherer.Register("chain", chainRegistry),
		gatherer.Register("ledger", ledgerRegistry),
	); err != nil {
		_ = firstErr(c.Close(), tracer.Close())
		return nil, err
	}

	assets := asset.NewRegistry()
	svc := custody.New(log, c, assets)
	tok := asset.NewToken(cfg.Asset.Name, cfg.Asset.Symbol, cfg.Asset.Decimals, svc.Resolve)
	if err := assets.Register(tok); err != nil {
		_ = firstErr(c.Close(), tracer.Close())
		return nil, err
	}

	ownerKey, err := keys.Get(ownerName, true)
	if err != nil {
		_ = firstErr(c.Close(), tracer.Close())
		return nil, err
	}
	l, err := ledger.New(ctx, log, c, factory.New(log, c, assets), assets, ledgerRegistry, ledger.Config{
		Name:        cfg.Ledger.Name,
		OwnerKey:    ownerKey.PublicKey(),
		Quorum:      cfg.Ledger.Quorum,
		Asset:       tok.Address(),
		MetadataURI: cfg.Ledger.MetadataURI,
		CreditActor: cfg.Ledger.CreditActor,
	})
	if err != nil {
		_ = firstErr(c.Close(), tracer.Close())
		return nil, err
	}
	owner, err := l.Owner(ctx)
	if err != nil {
		_ = firstErr(c.Close(), tracer.Close())
		return nil, err
	}

	c.Subscribe(chain.SubscriptionFunc{AcceptF: func(_ context.Context, e chain.Event) error {
		log.Info("event", zap.String("name", e.Name()), zap.Any("record", e))
		return nil
	}})
	return &simulation{
		log:      log,
		keys:     keys,
		ownerKey: ownerName,
		decimals: cfg.Asset.Decimals,
		tracer:   tracer,
		chain:    c,
		token:    tok,
		custody:  svc,
		ledger:   l,
		owner:    owner,
	}, nil
}

func (s *simulation) Close() error {
	return firstErr(s.chain.Close(), s.tracer.Close())
}

// Run executes every step of [p] in order, printing one response per step.
// It stops at the first step whose outcome differs from its expectation.
func (s *simulation) Run(ctx context.Context, p *Plan, w io.Writer) error {
	s.log.Info("running plan",
		zap.String("name", p.Name),
		zap.Int("steps", len(p.Steps)),
	)
	for i := range p.Steps {
		step := &p.Steps[i]
		resp := &Response{ID: i, Action: step.Action}
		res, err := s.execute(ctx, step)
		if res != nil {
			resp.Result = *res
		}
		if err != nil {
			resp.Error = err.Error()
		}
		resp.Print(w)

		switch {
		case len(step.ExpectError) == 0 && err != nil:
			return fmt.Errorf("step %d (%s): %w", i, step.Action, err)
		case len(step.ExpectError) > 0 && err == nil:
			return fmt.Errorf("%w: step %d (%s) succeeded, expected %q", ErrUnexpectedResult, i, step.Action, step.ExpectError)
		case len(step.ExpectError) > 0 && !strings.Contains(err.Error(), step.ExpectError):
			return fmt.Errorf("%w: step %d (%s) failed with %q, expected %q", ErrUnexpectedResult, i, step.Action, err, step.ExpectError)
		}
	}
	return nil
}

func (s *simulation) amount(step *Step) (uint64, error) {
	return utils.ParseBalance(step.Amount, s.decimals)
}

func (s *simulation) format(v uint64) string {
	return utils.FormatBalance(v, s.decimals)
}

func (s *simulation) account(ctx context.Context, identity string) (codec.Address, error) {
	return s.ledger.CustodyAddressOf(ctx, identity)
}

func (s *simulation) execute(ctx context.Context, step *Step) (*Result, error) {
	switch step.Action {
	case Register:
		account, err := s.ledger.RegisterMember(ctx, s.owner, step.Identity, step.Agreement)
		if err != nil {
			return nil, err
		}
		return &Result{Account: account.String()}, nil
	case Deposit:
		return s.deposit(ctx, step)
	case Contribute:
		account, err := s.account(ctx, step.Identity)
		if err != nil {
			return nil, err
		}
		amount, err := s.amount(step)
		if err != nil {
			return nil, err
		}
		if err := s.ledger.Contribute(ctx, s.owner, account, amount); err != nil {
			return nil, err
		}
		return s.balance(ctx, account)
	case Vote:
		voter, err := s.account(ctx, step.Identity)
		if err != nil {
			return nil, err
		}
		operator, err := s.keys.Address(step.Key)
		if err != nil {
			return nil, err
		}
		if err := s.ledger.ApproveToUseContribution(ctx, s.owner, voter, operator); err != nil {
			return nil, err
		}
		weight, err := s.ledger.Accumulator(ctx, operator)
		if err != nil {
			return nil, err
		}
		return &Result{Account: operator.String(), Amount: s.format(weight)}, nil
	case Grant:
		operator, err := s.keys.Address(step.Key)
		if err != nil {
			return nil, err
		}
		amount, err := s.amount(step)
		if err != nil {
			return nil, err
		}
		if err := s.ledger.GrantPermissionToUseContribution(ctx, s.owner, operator, amount); err != nil {
			return nil, err
		}
		return &Result{Account: operator.String(), Amount: s.format(amount)}, nil
	case Reset:
		operator, err := s.keys.Address(step.Key)
		if err != nil {
			return nil, err
		}
		return &Result{Account: operator.String()}, s.ledger.ResetQuorum(ctx, s.owner, operator)
	case Distribute:
		account, err := s.account(ctx, step.Identity)
		if err != nil {
			return nil, err
		}
		payout, err := s.ledger.DistributeContributionAsset(ctx, s.owner, account)
		if err != nil {
			return nil, err
		}
		return &Result{Account: account.String(), Amount: s.format(payout)}, nil
	case Batch:
		accounts := make([]codec.Address, 0, len(step.Identities))
		for _, identity := range step.Identities {
			account, err := s.account(ctx, identity)
			if err != nil {
				return nil, err
			}
			accounts = append(accounts, account)
		}
		total, err := s.ledger.BatchDistributeContributionAsset(ctx, s.owner, accounts)
		if err != nil {
			return nil, err
		}
		return &Result{Amount: s.format(total)}, nil
	case Transfer:
		from, err := s.account(ctx, step.Identity)
		if err != nil {
			return nil, err
		}
		to, err := s.keys.Address(step.To)
		if err != nil {
			return nil, err
		}
		if err := s.ledger.TransferMembership(ctx, s.owner, from, to, step.Agreement); err != nil {
			return nil, err
		}
		return s.balance(ctx, to)
	case Terminate:
		account, err := s.account(ctx, step.Identity)
		if err != nil {
			return nil, err
		}
		return &Result{Account: account.String()}, s.ledger.TerminateMembership(ctx, s.owner, account, step.Agreement)
	case Pause:
		return nil, s.ledger.Pause(ctx, s.owner)
	case Unpause:
		return nil, s.ledger.Unpause(ctx, s.owner)
	case Quorum:
		quorum, err := s.amount(step)
		if err != nil {
			return nil, err
		}
		return &Result{Amount: s.format(quorum)}, s.ledger.SetQuorum(ctx, s.owner, quorum)
	case Claim:
		return s.claim(ctx, step)
	case Withdraw:
		return s.withdraw(ctx, step)
	case Balance:
		account, err := s.account(ctx, step.Identity)
		if err != nil {
			return nil, err
		}
		return s.balance(ctx, account)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, step.Action)
	}
}

// deposit mints asset straight to a member's custody account, standing in
// for an external delivery.
func (s *simulation) deposit(ctx context.Context, step *Step) (*Result, error) {
	account, err := s.account(ctx, step.Identity)
	if err != nil {
		return nil, err
	}
	amount, err := s.amount(step)
	if err != nil {
		return nil, err
	}
	if err := s.chain.Execute(ctx, "token.Mint", func(ctx context.Context, mu state.Mutable) error {
		return s.token.Mint(ctx, mu, account, amount)
	}); err != nil {
		return nil, err
	}
	return s.balance(ctx, account)
}

func (s *simulation) claim(ctx context.Context, step *Step) (*Result, error) {
	account, err := s.account(ctx, step.Identity)
	if err != nil {
		return nil, err
	}
	claimant, err := s.keys.Address(step.Key)
	if err != nil {
		return nil, err
	}
	offset, err := time.ParseDuration(step.Deadline)
	if err != nil {
		return nil, err
	}
	acct, err := s.custody.Account(ctx, account)
	if err != nil {
		return nil, err
	}
	ownerKey, err := s.keys.Get(s.ownerKey, false)
	if err != nil {
		return nil, err
	}
	deadline := uint64(s.chain.Now().Add(offset).Unix())
	digest := custody.ClaimDigest(account, acct.IdentityKey, claimant, deadline)
	sig := auth.NewED25519Factory(ownerKey).Sign(digest[:])
	if err := s.custody.Claim(ctx, account, claimant, deadline, sig); err != nil {
		return nil, err
	}
	return &Result{Account: claimant.String()}, nil
}

func (s *simulation) withdraw(ctx context.Context, step *Step) (*Result, error) {
	account, err := s.account(ctx, step.Identity)
	if err != nil {
		return nil, err
	}
	claimant, err := s.keys.Address(step.Key)
	if err != nil {
		return nil, err
	}
	recipient := claimant
	if len(step.To) > 0 {
		recipient, err = s.keys.Address(step.To)
		if err != nil {
			return nil, err
		}
	}
	amount, err := s.amount(step)
	if err != nil {
		return nil, err
	}
	if err := s.custody.WithdrawTo(ctx, claimant, account, s.token.Address(), amount, recipient); err != nil {
		return nil, err
	}
	return s.balance(ctx, account)
}

// balance reports the contribution balance and the asset held by [account].
func (s *simulation) balance(ctx context.Context, account codec.Address) (*Result, error) {
	bal, err := s.ledger.BalanceOf(ctx, account)
	if err != nil {
		return nil, err
	}
	held, err := s.custody.BalanceOf(ctx, account, s.token.Address())
	if err != nil {
		return nil, err
	}
	return &Result{
		Account: account.String(),
		Balance: s.format(bal),
		Held:    s.format(held),
	}, nil
}
