package domain

import (
	"fmt"
	"strings"
)

// AssetType represents the Stellar asset type classification.
type AssetType string

const (
	AssetTypeNative           AssetType = "native"
	AssetTypeCreditAlphanum4  AssetType = "credit_alphanum4"
	AssetTypeCreditAlphanum12 AssetType = "credit_alphanum12"
	AssetTypePoolShare        AssetType = "liquidity_pool_shares"
)

// NativeCode is the ticker users type for the native asset.
const NativeCode = "XLM"

// AssetInfo describes a Stellar asset.
type AssetInfo struct {
	Code   string    `json:"code,omitempty"`
	Issuer string    `json:"issuer,omitempty"`
	Type   AssetType `json:"type"`
}

// IsNative returns true if this asset is the native XLM.
func (a AssetInfo) IsNative() bool {
	return a.Type == AssetTypeNative
}

// IsPoolShare reports whether the asset is a liquidity pool share.
func (a AssetInfo) IsPoolShare() bool {
	return a.Type == AssetTypePoolShare
}

// Canonical returns a canonical string representation: "native" for XLM, "CODE:ISSUER" for credits.
func (a AssetInfo) Canonical() string {
	if a.IsNative() {
		return "native"
	}
	return fmt.Sprintf("%s:%s", a.Code, a.Issuer)
}

// Label is the human-readable name shown in the transfer form.
func (a AssetInfo) Label() string {
	if a.IsNative() {
		return "Lumens"
	}
	return fmt.Sprintf("%s, %s", a.Code, a.Issuer)
}

// AssetTypeFromCode determines the Stellar asset type from the code string.
func AssetTypeFromCode(code string) AssetType {
	if IsNativeCode(code) {
		return AssetTypeNative
	}
	if len(code) <= 4 {
		return AssetTypeCreditAlphanum4
	}
	return AssetTypeCreditAlphanum12
}

// IsNativeCode reports whether a user-supplied code refers to the native asset.
func IsNativeCode(code string) bool {
	return strings.EqualFold(code, NativeCode) || code == string(AssetTypeNative)
}

// NewAssetInfo creates an AssetInfo with the correct type inferred from the code.
func NewAssetInfo(code, issuer string) AssetInfo {
	t := AssetTypeFromCode(code)
	if t == AssetTypeNative {
		return NativeAsset()
	}
	return AssetInfo{
		Code:   code,
		Issuer: issuer,
		Type:   t,
	}
}

var nativeAsset = AssetInfo{
	Code: NativeCode,
	Type: AssetTypeNative,
}

// NativeAsset returns the Stellar native asset info.
func NativeAsset() AssetInfo { return nativeAsset }
