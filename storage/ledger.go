// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/wrappers"

	"github.com/ava-labs/groupsavings/codec"
	"github.com/ava-labs/groupsavings/consts"
	"github.com/ava-labs/groupsavings/crypto/ed25519"
	"github.com/ava-labs/groupsavings/state"

	smath "github.com/ava-labs/avalanchego/utils/math"
)

type LedgerConfig struct {
	Owner       codec.Address
	OwnerKey    ed25519.PublicKey
	Quorum      uint64
	Asset       codec.Address
	Paused      bool
	MetadataURI string
}

func LedgerConfigKey(ledger codec.Address) []byte {
	return addressKey(ledgerConfigPrefix, LedgerConfigChunks, ledger)
}

func SetLedgerConfig(ctx context.Context, mu state.Mutable, ledger codec.Address, cfg *LedgerConfig) error {
	if len(cfg.MetadataURI) > MaxMetadataURISize {
		return ErrMetadataTooLarge
	}
	size := codec.AddressLen + ed25519.PublicKeyLen + consts.Uint64Len + codec.AddressLen + consts.BoolLen + consts.Uint16Len + len(cfg.MetadataURI)
	p := &wrappers.Packer{MaxSize: size, Bytes: make([]byte, 0, size)}
	p.PackFixedBytes(cfg.Owner[:])
	p.PackFixedBytes(cfg.OwnerKey[:])
	p.PackLong(cfg.Quorum)
	p.PackFixedBytes(cfg.Asset[:])
	p.PackBool(cfg.Paused)
	p.PackStr(cfg.MetadataURI)
	if p.Err != nil {
		return p.Err
	}
	return mu.Insert(ctx, LedgerConfigKey(ledger), p.Bytes)
}

// GetLedgerConfig returns [ErrLedgerNotFound] if [ledger] was never
// initialized.
func GetLedgerConfig(ctx context.Context, im state.Immutable, ledger codec.Address) (*LedgerConfig, error) {
	v, err := im.GetValue(ctx, LedgerConfigKey(ledger))
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrLedgerNotFound
	}
	if err != nil {
		return nil, err
	}
	p := &wrappers.Packer{Bytes: v}
	cfg := &LedgerConfig{}
	copy(cfg.Owner[:], p.UnpackFixedBytes(codec.AddressLen))
	copy(cfg.OwnerKey[:], p.UnpackFixedBytes(ed25519.PublicKeyLen))
	cfg.Quorum = p.UnpackLong()
	copy(cfg.Asset[:], p.UnpackFixedBytes(codec.AddressLen))
	cfg.Paused = p.UnpackBool()
	cfg.MetadataURI = p.UnpackStr()
	if p.Err != nil {
		return nil, fmt.Errorf("%w: ledger config: %w", ErrInvalidRecord, p.Err)
	}
	return cfg, nil
}

type MemberState uint8

const (
	NonMember MemberState = iota
	Active
	Transferred
	Terminated
)

func (s MemberState) String() string {
	switch s {
	case NonMember:
		return "NONMEMBER"
	case Active:
		return "ACTIVE"
	case Transferred:
		return "TRANSFERRED"
	case Terminated:
		return "TERMINATED"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", uint8(s))
	}
}

type Member struct {
	State        MemberState
	IdentityKey  ids.ID
	AgreementRef string
}

func MemberKey(ledger codec.Address, account codec.Address) []byte {
	return addressKey(memberPrefix, MemberChunks, ledger, account)
}

func SetMember(ctx context.Context, mu state.Mutable, ledger codec.Address, account codec.Address, m *Member) error {
	if len(m.AgreementRef) > MaxAgreementRefSize {
		return ErrAgreementTooLarge
	}
	size := consts.ByteLen + ids.IDLen + consts.Uint16Len + len(m.AgreementRef)
	p := &wrappers.Packer{MaxSize: size, Bytes: make([]byte, 0, size)}
	p.PackByte(byte(m.State))
	p.PackFixedBytes(m.IdentityKey[:])
	p.PackStr(m.AgreementRef)
	if p.Err != nil {
		return p.Err
	}
	return mu.Insert(ctx, MemberKey(ledger, account), p.Bytes)
}

// GetMember never returns a nil record: an account that was never
// registered is a [NonMember].
func GetMember(ctx context.Context, im state.Immutable, ledger codec.Address, account codec.Address) (*Member, error) {
	v, err := im.GetValue(ctx, MemberKey(ledger, account))
	if errors.Is(err, database.ErrNotFound) {
		return &Member{State: NonMember}, nil
	}
	if err != nil {
		return nil, err
	}
	p := &wrappers.Packer{Bytes: v}
	m := &Member{}
	m.State = MemberState(p.UnpackByte())
	copy(m.IdentityKey[:], p.UnpackFixedBytes(ids.IDLen))
	m.AgreementRef = p.UnpackStr()
	if p.Err != nil {
		return nil, fmt.Errorf("%w: member: %w", ErrInvalidRecord, p.Err)
	}
	return m, nil
}

func ContributionBalanceKey(ledger codec.Address, account codec.Address) []byte {
	return addressKey(contributionBalancePrefix, BalanceChunks, ledger, account)
}

func ContributionSupplyKey(ledger codec.Address) []byte {
	return addressKey(contributionSupplyPrefix, BalanceChunks, ledger)
}

func GetContributionBalance(ctx context.Context, im state.Immutable, ledger codec.Address, account codec.Address) (uint64, error) {
	return getUint64(ctx, im, ContributionBalanceKey(ledger, account))
}

func GetContributionSupply(ctx context.Context, im state.Immutable, ledger codec.Address) (uint64, error) {
	return getUint64(ctx, im, ContributionSupplyKey(ledger))
}

// MintContribution credits [amount] to [to] and the supply in one step so
// the two never diverge.
func MintContribution(ctx context.Context, mu state.Mutable, ledger codec.Address, to codec.Address, amount uint64) error {
	supply, err := GetContributionSupply(ctx, mu, ledger)
	if err != nil {
		return err
	}
	balance, err := GetContributionBalance(ctx, mu, ledger, to)
	if err != nil {
		return err
	}
	newSupply, err := smath.Add(supply, amount)
	if err != nil {
		return err
	}
	newBalance, err := smath.Add(balance, amount)
	if err != nil {
		return err
	}
	if err := setUint64(ctx, mu, ContributionSupplyKey(ledger), newSupply); err != nil {
		return err
	}
	return setUint64(ctx, mu, ContributionBalanceKey(ledger, to), newBalance)
}

// BurnContribution debits [amount] from [from] and the supply.
func BurnContribution(ctx context.Context, mu state.Mutable, ledger codec.Address, from codec.Address, amount uint64) error {
	supply, err := GetContributionSupply(ctx, mu, ledger)
	if err != nil {
		return err
	}
	balance, err := GetContributionBalance(ctx, mu, ledger, from)
	if err != nil {
		return err
	}
	newBalance, err := smath.Sub(balance, amount)
	if err != nil {
		return fmt.Errorf("%w: burn %d from balance %d", ErrInsufficientAmount, amount, balance)
	}
	newSupply, err := smath.Sub(supply, amount)
	if err != nil {
		return fmt.Errorf("%w: burn %d from supply %d", ErrInsufficientAmount, amount, supply)
	}
	if err := setUint64(ctx, mu, ContributionBalanceKey(ledger, from), newBalance); err != nil {
		return err
	}
	return setUint64(ctx, mu, ContributionSupplyKey(ledger), newSupply)
}

// MoveContribution transfers [amount] between two accounts of the same
// ledger. The supply is unchanged.
func MoveContribution(ctx context.Context, mu state.Mutable, ledger codec.Address, from codec.Address, to codec.Address, amount uint64) error {
	fromBalance, err := GetContributionBalance(ctx, mu, ledger, from)
	if err != nil {
		return err
	}
	newFromBalance, err := smath.Sub(fromBalance, amount)
	if err != nil {
		return fmt.Errorf("%w: move %d from balance %d", ErrInsufficientAmount, amount, fromBalance)
	}
	if err := setUint64(ctx, mu, ContributionBalanceKey(ledger, from), newFromBalance); err != nil {
		return err
	}
	toBalance, err := GetContributionBalance(ctx, mu, ledger, to)
	if err != nil {
		return err
	}
	newToBalance, err := smath.Add(toBalance, amount)
	if err != nil {
		return err
	}
	return setUint64(ctx, mu, ContributionBalanceKey(ledger, to), newToBalance)
}

func AccumulatorKey(ledger codec.Address, operator codec.Address) []byte {
	return addressKey(accumulatorPrefix, BalanceChunks, ledger, operator)
}

func GetAccumulator(ctx context.Context, im state.Immutable, ledger codec.Address, operator codec.Address) (uint64, error) {
	return getUint64(ctx, im, AccumulatorKey(ledger, operator))
}

func SetAccumulator(ctx context.Context, mu state.Mutable, ledger codec.Address, operator codec.Address, weight uint64) error {
	return setUint64(ctx, mu, AccumulatorKey(ledger, operator), weight)
}
