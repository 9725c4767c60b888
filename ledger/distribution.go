// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import (
	"context"
	"fmt"

	"github.com/ava-labs/avalanchego/utils/set"
	"github.com/holiman/uint256"
	"go.uber.org/zap"

	"github.com/ava-labs/groupsavings/asset"
	"github.com/ava-labs/groupsavings/codec"
	"github.com/ava-labs/groupsavings/state"
	"github.com/ava-labs/groupsavings/storage"
)

// payoutOf returns floor(pool * balance / supply).
func payoutOf(pool uint64, balance uint64, supply uint64) (uint64, error) {
	z, overflow := new(uint256.Int).MulDivOverflow(
		uint256.NewInt(pool),
		uint256.NewInt(balance),
		uint256.NewInt(supply),
	)
	if overflow || !z.IsUint64() {
		return 0, fmt.Errorf("%w: pool=%d balance=%d supply=%d", ErrPayoutOverflow, pool, balance, supply)
	}
	return z.Uint64(), nil
}

// snapshot is the pool state captured at the start of a distribution.
type snapshot struct {
	fungible asset.Fungible
	pool     uint64
	supply   uint64
}

func (l *Ledger) snapshot(ctx context.Context, mu state.Mutable) (*snapshot, error) {
	cfg, err := l.config(ctx, mu)
	if err != nil {
		return nil, err
	}
	fungible, err := l.fungible(cfg)
	if err != nil {
		return nil, err
	}
	supply, err := storage.GetContributionSupply(ctx, mu, l.addr)
	if err != nil {
		return nil, err
	}
	if supply == 0 {
		return nil, ErrZeroSupply
	}
	pool, err := fungible.BalanceOf(ctx, mu, l.addr)
	if err != nil {
		return nil, err
	}
	if pool == 0 {
		return nil, ErrEmptyPool
	}
	return &snapshot{fungible: fungible, pool: pool, supply: supply}, nil
}

// pay burns [balance] from [account] and transfers [payout] to it. The burn
// is applied before the asset moves.
func (l *Ledger) pay(ctx context.Context, mu state.Mutable, s *snapshot, actor codec.Address, account codec.Address, balance uint64, payout uint64) error {
	if err := storage.BurnContribution(ctx, mu, l.addr, account, balance); err != nil {
		return err
	}
	if err := s.fungible.Transfer(ctx, mu, l.addr, account, payout); err != nil {
		return err
	}
	return l.chain.Emit(ctx, &DistributionMade{
		Actor:   actor,
		Account: account,
		Burned:  balance,
		Payout:  payout,
		Pool:    s.pool,
		Supply:  s.supply,
	})
}

// DistributeContributionAsset burns [account]'s whole balance and pays it
// its proportional share of the pool.
func (l *Ledger) DistributeContributionAsset(ctx context.Context, actor codec.Address, account codec.Address) (uint64, error) {
	if account.IsEmpty() {
		return 0, ErrNullAddress
	}

	var payout uint64
	err := l.chain.Run(ctx, l.guarded("DistributeContributionAsset", actor), func(ctx context.Context, mu state.Mutable) error {
		balance, err := storage.GetContributionBalance(ctx, mu, l.addr, account)
		if err != nil {
			return err
		}
		if balance == 0 {
			return fmt.Errorf("%w: %s", ErrZeroBalance, account)
		}
		s, err := l.snapshot(ctx, mu)
		if err != nil {
			return err
		}
		payout, err = payoutOf(s.pool, balance, s.supply)
		if err != nil {
			return err
		}
		if payout == 0 {
			return fmt.Errorf("%w: pool=%d balance=%d supply=%d", ErrZeroPayout, s.pool, balance, s.supply)
		}
		l.chain.OnCommit(ctx, func() {
			l.metrics.distributed.Add(float64(payout))
			l.log.Debug("distribution made",
				zap.Stringer("account", account),
				zap.Uint64("payout", payout),
			)
		})
		return l.pay(ctx, mu, s, actor, account, balance, payout)
	})
	if err != nil {
		return 0, err
	}
	return payout, nil
}

// BatchDistributeContributionAsset distributes to every account in
// [accounts] against the pool balance and supply captured once on entry.
// Accounts with a zero balance or a zero payout are skipped. It returns the
// total paid.
func (l *Ledger) BatchDistributeContributionAsset(ctx context.Context, actor codec.Address, accounts []codec.Address) (uint64, error) {
	var (
		total uint64
		paid  int
	)
	err := l.chain.Run(ctx, l.guarded("BatchDistributeContributionAsset", actor), func(ctx context.Context, mu state.Mutable) error {
		s, err := l.snapshot(ctx, mu)
		if err != nil {
			return err
		}
		seen := set.NewSet[codec.Address](len(accounts))
		for _, account := range accounts {
			if seen.Contains(account) {
				continue
			}
			seen.Add(account)

			balance, err := storage.GetContributionBalance(ctx, mu, l.addr, account)
			if err != nil {
				return err
			}
			if balance == 0 {
				continue
			}
			payout, err := payoutOf(s.pool, balance, s.supply)
			if err != nil {
				return err
			}
			if payout == 0 {
				l.log.Debug("skipping zero payout",
					zap.Stringer("account", account),
					zap.Uint64("balance", balance),
				)
				continue
			}
			if err := l.pay(ctx, mu, s, actor, account, balance, payout); err != nil {
				return err
			}
			total += payout
			paid++
		}
		l.chain.OnCommit(ctx, func() {
			l.metrics.distributed.Add(float64(total))
			l.log.Info("batch distribution made",
				zap.Int("accounts", len(accounts)),
				zap.Int("paid", paid),
				zap.Uint64("total", total),
			)
		})
		return l.chain.Emit(ctx, &BatchDistributed{
			Actor:    actor,
			Accounts: len(accounts),
			Paid:     paid,
			Total:    total,
		})
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}
