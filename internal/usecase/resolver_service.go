package usecase

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/productgoat/backend/internal/domain"
	"go.uber.org/zap"
)

// barcodeRegex accepts EAN-8 through EAN-14 style numeric codes. The barcode
// arrives from a URL query parameter and is rejected here before any source
// is queried.
var barcodeRegex = regexp.MustCompile(`^[0-9]{6,14}$`)

// ResolverService resolves a scanned barcode into one normalized product
// record. The primary warehouse source is always tried first and must settle
// before the public fallback is consulted; the two are never queried in
// parallel. Results are never cached; each navigation re-resolves.
type ResolverService struct {
	primary  domain.ProductSource
	fallback domain.ProductSource
	log      *zap.SugaredLogger
}

// NewResolverService creates a resolver over the primary and fallback sources.
func NewResolverService(primary, fallback domain.ProductSource, log *zap.SugaredLogger) *ResolverService {
	return &ResolverService{
		primary:  primary,
		fallback: fallback,
		log:      log,
	}
}

// Resolve returns the normalized product for a barcode.
//
// Every primary-source failure — query error, row decode error, or miss — is
// recovered locally by falling through to the fallback and never surfaces to
// the caller. From the fallback, ErrProductNotFound is the legitimate empty
// result; any other failure means both sources are unavailable and resolution
// fails terminally with ErrResolutionFailed.
func (s *ResolverService) Resolve(ctx context.Context, barcode string) (*domain.Product, error) {
	if !barcodeRegex.MatchString(barcode) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidBarcode, barcode)
	}

	product, err := s.primary.Lookup(ctx, barcode)
	if err == nil {
		return product, nil
	}
	s.log.Debugw("primary source unavailable, falling back", "barcode", barcode, "reason", err)

	product, err = s.fallback.Lookup(ctx, barcode)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return nil, err
		}
		s.log.Warnw("both product sources failed", "barcode", barcode, "error", err)
		return nil, fmt.Errorf("%w: product sources are unavailable, please try again later: %v",
			domain.ErrResolutionFailed, err)
	}
	return product, nil
}
