// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package custody implements per-member custody accounts. An account starts
// unclaimed and is bound to a claimant exactly once, on presentation of a
// claim signed by the owner of the ledger that created it.
package custody

import (
	"context"
	"fmt"

	"github.com/ava-labs/avalanchego/utils/logging"
	"go.uber.org/zap"

	"github.com/ava-labs/groupsavings/asset"
	"github.com/ava-labs/groupsavings/chain"
	"github.com/ava-labs/groupsavings/codec"
	"github.com/ava-labs/groupsavings/consts"
	"github.com/ava-labs/groupsavings/crypto/ed25519"
	"github.com/ava-labs/groupsavings/state"
	"github.com/ava-labs/groupsavings/storage"
)

var _ asset.Receiver = (*Service)(nil)

// Service executes custody account operations on a chain.
type Service struct {
	log    logging.Logger
	chain  *chain.Chain
	assets *asset.Registry
}

func New(log logging.Logger, c *chain.Chain, assets *asset.Registry) *Service {
	return &Service{
		log:    log,
		chain:  c,
		assets: assets,
	}
}

func lockName(account codec.Address) string {
	return "custody/" + account.String()
}

func getAccount(ctx context.Context, im state.Immutable, account codec.Address) (*storage.CustodyAccount, error) {
	acct, exists, err := storage.GetCustodyAccount(ctx, im, account)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrNotDeployed, account)
	}
	return acct, nil
}

// Claim binds [account] to [claimant]. [sig] must be the ledger owner's
// signature over [ClaimDigest] and [deadline] must not have passed.
func (s *Service) Claim(
	ctx context.Context,
	account codec.Address,
	claimant codec.Address,
	deadline uint64,
	sig ed25519.Signature,
) error {
	return s.chain.Execute(ctx, "custody.Claim", func(ctx context.Context, mu state.Mutable) error {
		acct, err := getAccount(ctx, mu, account)
		if err != nil {
			return err
		}
		if acct.Claimed() {
			return ErrAlreadyClaimed
		}
		if claimant.IsEmpty() {
			return ErrInvalidClaimant
		}
		if now := s.chain.Clock().Unix(); now > deadline {
			return fmt.Errorf("%w: deadline=%d now=%d", ErrSignatureExpired, deadline, now)
		}
		cfg, err := storage.GetLedgerConfig(ctx, mu, acct.Ledger)
		if err != nil {
			return err
		}
		if !VerifyClaim(cfg.OwnerKey, account, acct.IdentityKey, claimant, deadline, sig) {
			return ErrInvalidSignature
		}
		acct.Claimant = claimant
		if err := storage.SetCustodyAccount(ctx, mu, account, acct); err != nil {
			return err
		}
		s.chain.OnCommit(ctx, func() {
			s.log.Info("custody account claimed",
				zap.Stringer("account", account),
				zap.Stringer("claimant", claimant),
			)
		})
		return s.chain.Emit(ctx, &ClaimCompleted{
			Account:     account,
			IdentityKey: acct.IdentityKey,
			Claimant:    claimant,
			Deadline:    deadline,
		})
	})
}

// Withdraw sends [amount] of [assetAddr] held by [account] to [actor].
func (s *Service) Withdraw(ctx context.Context, actor codec.Address, account codec.Address, assetAddr codec.Address, amount uint64) error {
	return s.WithdrawTo(ctx, actor, account, assetAddr, amount, actor)
}

// WithdrawTo sends [amount] of [assetAddr] held by [account] to
// [recipient]. Only the claimant may withdraw.
func (s *Service) WithdrawTo(
	ctx context.Context,
	actor codec.Address,
	account codec.Address,
	assetAddr codec.Address,
	amount uint64,
	recipient codec.Address,
) error {
	call := chain.Call{
		Name: "custody.WithdrawTo",
		Lock: lockName(account),
	}
	return s.chain.Run(ctx, call, func(ctx context.Context, mu state.Mutable) error {
		acct, err := getAccount(ctx, mu, account)
		if err != nil {
			return err
		}
		if !acct.Claimed() {
			return ErrNotClaimed
		}
		if actor != acct.Claimant {
			return ErrNotClaimant
		}
		if amount == 0 {
			return ErrZeroAmount
		}
		if recipient.IsEmpty() {
			return ErrNullAddress
		}
		fungible, err := s.assets.Get(assetAddr)
		if err != nil {
			return err
		}
		if err := fungible.Transfer(ctx, mu, account, recipient, amount); err != nil {
			return err
		}
		return s.chain.Emit(ctx, &WithdrawalMade{
			Account:   account,
			Asset:     assetAddr,
			Claimant:  actor,
			Recipient: recipient,
			Amount:    amount,
		})
	})
}

// OnAssetReceived accepts every delivery, including to accounts that are
// not deployed yet.
func (s *Service) OnAssetReceived(
	_ context.Context,
	_ state.Mutable,
	assetAddr codec.Address,
	operator codec.Address,
	from codec.Address,
	to codec.Address,
	amount uint64,
) error {
	s.log.Debug("custody account received asset",
		zap.Stringer("account", to),
		zap.Stringer("asset", assetAddr),
		zap.Stringer("operator", operator),
		zap.Stringer("from", from),
		zap.Uint64("amount", amount),
	)
	return nil
}

// Resolve is an [asset.ReceiverResolver] for custody account addresses.
func (s *Service) Resolve(account codec.Address) (asset.Receiver, bool) {
	if account.TypeID() != consts.CustodyID {
		return nil, false
	}
	return s, true
}

func (s *Service) Account(ctx context.Context, account codec.Address) (*storage.CustodyAccount, error) {
	var acct *storage.CustodyAccount
	err := s.chain.View(ctx, func(ctx context.Context, im state.Immutable) error {
		var err error
		acct, err = getAccount(ctx, im, account)
		return err
	})
	return acct, err
}

func (s *Service) IsClaimed(ctx context.Context, account codec.Address) (bool, error) {
	acct, err := s.Account(ctx, account)
	if err != nil {
		return false, err
	}
	return acct.Claimed(), nil
}

// Claimant returns [codec.EmptyAddress] while [account] is unclaimed.
func (s *Service) Claimant(ctx context.Context, account codec.Address) (codec.Address, error) {
	acct, err := s.Account(ctx, account)
	if err != nil {
		return codec.EmptyAddress, err
	}
	return acct.Claimant, nil
}

func (s *Service) BalanceOf(ctx context.Context, account codec.Address, assetAddr codec.Address) (uint64, error) {
	fungible, err := s.assets.Get(assetAddr)
	if err != nil {
		return 0, err
	}
	var bal uint64
	err = s.chain.View(ctx, func(ctx context.Context, im state.Immutable) error {
		var err error
		bal, err = fungible.BalanceOf(ctx, im, account)
		return err
	})
	return bal, err
}
