package models

import (
	"encoding/json"
	"fmt"
)

// AssetType discriminates the asset variants. Values match the wire contract
// used by existing clients, including the historical capitalized "Crypto".
type AssetType string

const (
	AssetTypeStock      AssetType = "stock"
	AssetTypeFund       AssetType = "fund"
	AssetTypeCrypto     AssetType = "Crypto"
	AssetTypeBond       AssetType = "bond"
	AssetTypeRealEstate AssetType = "real_estate"
	AssetTypeHYSA       AssetType = "hysa"
	AssetTypeCash       AssetType = "cash"
)

// ValidAssetTypes enumerates every accepted discriminant value.
var ValidAssetTypes = map[AssetType]struct{}{
	AssetTypeStock:      {},
	AssetTypeFund:       {},
	AssetTypeCrypto:     {},
	AssetTypeBond:       {},
	AssetTypeRealEstate: {},
	AssetTypeHYSA:       {},
	AssetTypeCash:       {},
}

// Asset is a single tracked holding. CostBasis is per unit, except for real
// estate where Quantity is pinned to 1. The Meta shape is fully determined by
// AssetType; UnmarshalJSON dispatches on the discriminant, so a record cannot
// carry another variant's metadata.
type Asset struct {
	ID          string    `json:"id"`
	AssetType   AssetType `json:"assetType"`
	Symbol      string    `json:"symbol"`
	Account     *string   `json:"account,omitempty"`
	Quantity    float64   `json:"quantity"`
	CostBasis   float64   `json:"costBasis"`
	MarketValue *float64  `json:"marketValue,omitempty"`
	Meta        AssetMeta `json:"meta,omitempty"`
}

// AssetMeta is the closed set of variant metadata payloads.
type AssetMeta interface {
	assetMeta()
}

// EquityMeta is the metadata for stock and fund assets. Symbol is the ticker.
type EquityMeta struct {
	Exchange      string   `json:"exchange,omitempty"`
	DividendYield *float64 `json:"dividendYield,omitempty"`
}

// CryptoMeta is the metadata for crypto assets. Symbol is the coin symbol.
type CryptoMeta struct {
	Chain  string `json:"chain,omitempty"`
	Wallet string `json:"wallet,omitempty"`
}

// BondMeta is the metadata for bond assets. All fields are required.
type BondMeta struct {
	Coupon       float64      `json:"coupon"`
	MaturityDate FlexibleDate `json:"maturityDate"`
	ParValue     float64      `json:"parValue"`
}

// RealEstateMeta is the metadata for real estate assets. Symbol is a free-text
// label ("House A", "beach home"). CurrentEstimate is required.
type RealEstateMeta struct {
	Address         string  `json:"address,omitempty"`
	CurrentEstimate float64 `json:"currentEstimate"`
	MortgageBalance float64 `json:"mortgageBalance"`
	MortgageRate    float64 `json:"mortgageRate"`
}

// CashMeta is the metadata for hysa and cash assets. Symbol is the account
// nickname ("amex hysa").
type CashMeta struct {
	Institution string   `json:"institution,omitempty"`
	APY         *float64 `json:"apy,omitempty"`
}

func (EquityMeta) assetMeta()     {}
func (CryptoMeta) assetMeta()     {}
func (BondMeta) assetMeta()       {}
func (RealEstateMeta) assetMeta() {}
func (CashMeta) assetMeta()       {}

// UnmarshalJSON decodes an asset record, selecting the Meta type from the
// assetType discriminant.
func (a *Asset) UnmarshalJSON(data []byte) error {
	type plain struct {
		ID          string          `json:"id"`
		AssetType   AssetType       `json:"assetType"`
		Symbol      string          `json:"symbol"`
		Account     *string         `json:"account"`
		Quantity    float64         `json:"quantity"`
		CostBasis   float64         `json:"costBasis"`
		MarketValue *float64        `json:"marketValue"`
		Meta        json.RawMessage `json:"meta"`
	}
	var raw plain
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	a.ID = raw.ID
	a.AssetType = raw.AssetType
	a.Symbol = raw.Symbol
	a.Account = raw.Account
	a.Quantity = raw.Quantity
	a.CostBasis = raw.CostBasis
	a.MarketValue = raw.MarketValue

	if len(raw.Meta) == 0 || string(raw.Meta) == "null" {
		a.Meta = nil
		return nil
	}
	meta, err := DecodeMeta(raw.AssetType, raw.Meta)
	if err != nil {
		return err
	}
	a.Meta = meta
	return nil
}

// DecodeMeta unmarshals a raw meta payload into the variant type selected by
// the discriminant.
func DecodeMeta(assetType AssetType, data []byte) (AssetMeta, error) {
	switch assetType {
	case AssetTypeStock, AssetTypeFund:
		var m EquityMeta
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, err
		}
		return m, nil
	case AssetTypeCrypto:
		var m CryptoMeta
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, err
		}
		return m, nil
	case AssetTypeBond:
		var m BondMeta
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, err
		}
		return m, nil
	case AssetTypeRealEstate:
		var m RealEstateMeta
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, err
		}
		return m, nil
	case AssetTypeHYSA, AssetTypeCash:
		var m CashMeta
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, err
		}
		return m, nil
	default:
		return nil, fmt.Errorf("unknown asset type %q", assetType)
	}
}
