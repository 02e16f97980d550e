package portfolio

import (
	"context"

	"github.com/gcavalcante/walletfolio/internal/wallet"
)

func (s *service) Watch(ctx context.Context, address string) error {
	if s.addressBook == nil {
		return ErrNoAddressBook
	}

	addr, err := wallet.Parse(address)
	if err != nil {
		return err
	}

	return s.addressBook.SaveAddress(ctx, addr.Canonical)
}

func (s *service) Unwatch(ctx context.Context, address string) error {
	if s.addressBook == nil {
		return ErrNoAddressBook
	}

	addr, err := wallet.Parse(address)
	if err != nil {
		return err
	}

	return s.addressBook.RemoveAddress(ctx, addr.Canonical)
}

func (s *service) SavedAddresses(ctx context.Context) ([]string, error) {
	if s.addressBook == nil {
		return nil, ErrNoAddressBook
	}

	return s.addressBook.ListAddresses(ctx)
}
