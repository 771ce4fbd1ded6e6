package validate

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/kwatts/networth/internal/models"
)

// ValidateAsset checks an untyped asset record structurally, coercing
// numeric-looking strings and date-looking values first, and returns either a
// typed Asset or a *ValidationError enumerating every violated constraint.
//
// A missing id is filled with a generated UUID; a present id must be a
// non-empty string. Real-estate quantity is normalized to 1 regardless of the
// input value (coerce policy, not reject).
func ValidateAsset(raw map[string]any) (models.Asset, error) {
	verr := &ValidationError{}
	var a models.Asset

	assetType, typeOK := discriminant(raw, verr)

	a.ID = validateID(raw, verr)
	a.Symbol = requiredString(raw, "symbol", verr)

	if v, ok := raw["account"]; ok && v != nil {
		account, ok := coerceString(v)
		if !ok || account == "" {
			verr.add("account", "must be a non-empty string")
		} else {
			a.Account = &account
		}
	}

	if typeOK && assetType == models.AssetTypeRealEstate {
		// Quantity is pinned to 1 for real estate (costBasis is the
		// aggregate acquisition cost); any provided value is normalized,
		// and a missing one defaults.
		if v, ok := raw["quantity"]; ok && v != nil {
			if _, numeric := coerceNumber(v); !numeric {
				verr.add("quantity", "must be a number")
			}
		}
		a.Quantity = 1
	} else {
		a.Quantity = requiredNonNegativeNumber(raw, "quantity", verr)
	}
	a.CostBasis = requiredNonNegativeNumber(raw, "costBasis", verr)

	if v, ok := raw["marketValue"]; ok && v != nil {
		mv, ok := coerceNumber(v)
		switch {
		case !ok:
			verr.add("marketValue", "must be a number")
		case mv < 0:
			verr.add("marketValue", "must be >= 0")
		default:
			a.MarketValue = &mv
		}
	}

	if !typeOK {
		// Without a valid discriminant the meta shape is undefined; report
		// the common-field errors collected so far.
		return models.Asset{}, verr.orNil()
	}
	a.AssetType = assetType

	meta, metaOK := metaObject(raw, a.AssetType, verr)
	if metaOK {
		a.Meta = validateMeta(a.AssetType, meta, verr)
	}

	if err := verr.orNil(); err != nil {
		return models.Asset{}, err
	}
	return a, nil
}

// ValidateAssets validates an ordered batch of raw records. The whole batch
// is rejected if any single record is invalid; the returned error aggregates
// every violation across the batch, with paths prefixed "assets[i].".
// Duplicate ids within the batch are rejected.
func ValidateAssets(raws []map[string]any) ([]models.Asset, error) {
	verr := &ValidationError{}
	assets := make([]models.Asset, 0, len(raws))
	seen := make(map[string]struct{}, len(raws))

	for i, raw := range raws {
		a, err := ValidateAsset(raw)
		if err != nil {
			var ve *ValidationError
			if errors.As(err, &ve) {
				for _, f := range ve.Fields {
					verr.add(fmt.Sprintf("assets[%d].%s", i, f.Path), f.Reason)
				}
			} else {
				verr.add(fmt.Sprintf("assets[%d]", i), err.Error())
			}
			continue
		}
		if _, dup := seen[a.ID]; dup {
			verr.add(fmt.Sprintf("assets[%d].id", i), "duplicate id within batch")
			continue
		}
		seen[a.ID] = struct{}{}
		assets = append(assets, a)
	}

	if err := verr.orNil(); err != nil {
		return nil, err
	}
	return assets, nil
}

func validateID(raw map[string]any, verr *ValidationError) string {
	v, ok := raw["id"]
	if !ok || v == nil {
		return uuid.NewString()
	}
	id, ok := coerceString(v)
	if !ok || id == "" {
		verr.add("id", "must be a non-empty string")
		return ""
	}
	return id
}

func discriminant(raw map[string]any, verr *ValidationError) (models.AssetType, bool) {
	v, ok := raw["assetType"]
	if !ok || v == nil {
		verr.add("assetType", "is required")
		return "", false
	}
	s, ok := coerceString(v)
	if !ok {
		verr.add("assetType", "must be a string")
		return "", false
	}
	t := models.AssetType(s)
	if _, known := models.ValidAssetTypes[t]; !known {
		verr.add("assetType", fmt.Sprintf("unknown asset type %q (expected stock, fund, Crypto, bond, real_estate, hysa or cash)", s))
		return "", false
	}
	return t, true
}

func requiredString(raw map[string]any, path string, verr *ValidationError) string {
	v, ok := raw[path]
	if !ok || v == nil {
		verr.add(path, "is required")
		return ""
	}
	s, ok := coerceString(v)
	if !ok || s == "" {
		verr.add(path, "must be a non-empty string")
		return ""
	}
	return s
}

func requiredNonNegativeNumber(raw map[string]any, path string, verr *ValidationError) float64 {
	v, ok := raw[path]
	if !ok || v == nil {
		verr.add(path, "is required")
		return 0
	}
	n, ok := coerceNumber(v)
	if !ok {
		verr.add(path, "must be a number")
		return 0
	}
	if n < 0 {
		verr.add(path, "must be >= 0")
		return 0
	}
	return n
}

// metaObject extracts the raw meta map. Bond and real estate require a meta
// payload; for the other variants it is optional.
func metaObject(raw map[string]any, assetType models.AssetType, verr *ValidationError) (map[string]any, bool) {
	required := assetType == models.AssetTypeBond || assetType == models.AssetTypeRealEstate

	v, ok := raw["meta"]
	if !ok || v == nil {
		if required {
			verr.add("meta", "is required")
			return nil, false
		}
		return map[string]any{}, true
	}
	m, ok := v.(map[string]any)
	if !ok {
		verr.add("meta", "must be an object")
		return nil, false
	}
	return m, true
}

func validateMeta(assetType models.AssetType, meta map[string]any, verr *ValidationError) models.AssetMeta {
	switch assetType {
	case models.AssetTypeStock, models.AssetTypeFund:
		var m models.EquityMeta
		m.Exchange = optionalMetaString(meta, "exchange", verr)
		m.DividendYield = optionalMetaNumber(meta, "dividendYield", 0, 0, false, verr)
		return m
	case models.AssetTypeCrypto:
		var m models.CryptoMeta
		m.Chain = optionalMetaString(meta, "chain", verr)
		m.Wallet = optionalMetaString(meta, "wallet", verr)
		return m
	case models.AssetTypeBond:
		var m models.BondMeta
		m.Coupon = requiredMetaNumber(meta, "coupon", 0, 0, false, verr)
		m.MaturityDate = requiredMetaDate(meta, "maturityDate", verr)
		m.ParValue = requiredMetaPositive(meta, "parValue", verr)
		return m
	case models.AssetTypeRealEstate:
		var m models.RealEstateMeta
		m.Address = optionalMetaString(meta, "address", verr)
		m.CurrentEstimate = requiredMetaNumber(meta, "currentEstimate", 0, 0, false, verr)
		m.MortgageBalance = defaultedMetaNumber(meta, "mortgageBalance", 0, 0, false, verr)
		m.MortgageRate = defaultedMetaNumber(meta, "mortgageRate", 0, 100, true, verr)
		return m
	case models.AssetTypeHYSA, models.AssetTypeCash:
		var m models.CashMeta
		m.Institution = optionalMetaString(meta, "institution", verr)
		m.APY = optionalMetaNumber(meta, "apy", 0, 100, true, verr)
		return m
	}
	return nil
}

func optionalMetaString(meta map[string]any, field string, verr *ValidationError) string {
	v, ok := meta[field]
	if !ok || v == nil {
		return ""
	}
	s, ok := coerceString(v)
	if !ok {
		verr.add("meta."+field, "must be a string")
		return ""
	}
	return s
}

// boundedNumber range-checks a coerced value against [min, max]; max only
// applies when bounded is true.
func boundedNumber(path string, n float64, min, max float64, bounded bool, verr *ValidationError) bool {
	if n < min {
		verr.add(path, fmt.Sprintf("must be >= %g", min))
		return false
	}
	if bounded && n > max {
		verr.add(path, fmt.Sprintf("must be <= %g", max))
		return false
	}
	return true
}

func optionalMetaNumber(meta map[string]any, field string, min, max float64, bounded bool, verr *ValidationError) *float64 {
	v, ok := meta[field]
	if !ok || v == nil {
		return nil
	}
	n, ok := coerceNumber(v)
	if !ok {
		verr.add("meta."+field, "must be a number")
		return nil
	}
	if !boundedNumber("meta."+field, n, min, max, bounded, verr) {
		return nil
	}
	return &n
}

func requiredMetaNumber(meta map[string]any, field string, min, max float64, bounded bool, verr *ValidationError) float64 {
	v, ok := meta[field]
	if !ok || v == nil {
		verr.add("meta."+field, "is required")
		return 0
	}
	n, ok := coerceNumber(v)
	if !ok {
		verr.add("meta."+field, "must be a number")
		return 0
	}
	boundedNumber("meta."+field, n, min, max, bounded, verr)
	return n
}

func defaultedMetaNumber(meta map[string]any, field string, min, max float64, bounded bool, verr *ValidationError) float64 {
	if v, ok := meta[field]; !ok || v == nil {
		return 0
	}
	return requiredMetaNumber(meta, field, min, max, bounded, verr)
}

func requiredMetaPositive(meta map[string]any, field string, verr *ValidationError) float64 {
	v, ok := meta[field]
	if !ok || v == nil {
		verr.add("meta."+field, "is required")
		return 0
	}
	n, ok := coerceNumber(v)
	if !ok {
		verr.add("meta."+field, "must be a number")
		return 0
	}
	if n <= 0 {
		verr.add("meta."+field, "must be > 0")
		return 0
	}
	return n
}

func requiredMetaDate(meta map[string]any, field string, verr *ValidationError) models.FlexibleDate {
	v, ok := meta[field]
	if !ok || v == nil {
		verr.add("meta."+field, "is required")
		return models.FlexibleDate{}
	}
	t, ok := coerceDate(v)
	if !ok {
		verr.add("meta."+field, "must be a date")
		return models.FlexibleDate{}
	}
	return models.FlexibleDate{Time: t}
}
