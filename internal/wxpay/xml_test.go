package wxpay

import (
	"strings"
	"testing"
)

func TestEncodeXMLSkipsEmptyFields(t *testing.T) {
	fields := []Field{
		{"appid", "wx1"},
		{"attach", ""},
		{"mch_id", "10001"},
	}
	got := EncodeXML(fields)
	want := "<xml><appid>wx1</appid><mch_id>10001</mch_id></xml>"
	if got != want {
		t.Errorf("encode mismatch:\n got %s\nwant %s", got, want)
	}
	if strings.Contains(got, "<attach>") {
		t.Errorf("empty field emitted: %s", got)
	}
}

func TestMatchFieldCDATAAndBare(t *testing.T) {
	doc := "<xml><appid><![CDATA[wx1]]></appid><total_fee>100</total_fee></xml>"
	if v := MatchField(doc, "appid"); v != "wx1" {
		t.Errorf("cdata match failed: %q", v)
	}
	if v := MatchField(doc, "total_fee"); v != "100" {
		t.Errorf("bare match failed: %q", v)
	}
	if v := MatchField(doc, "openid"); v != "" {
		t.Errorf("absent field should be empty, got %q", v)
	}
}

func TestXMLRoundTrip(t *testing.T) {
	fields := []Field{
		{"appid", "wx1"},
		{"mch_id", "10001"},
		{"nonce_str", "abc"},
		{"out_trade_no", "ORDER1"},
		{"total_fee", "100"},
	}
	doc := EncodeXML(fields)
	for _, f := range fields {
		if v := MatchField(doc, f.Name); v != f.Value {
			t.Errorf("round trip %s: got %q want %q", f.Name, v, f.Value)
		}
	}
}

func TestSignatureSymmetry(t *testing.T) {
	// XML 解码后的字段重建签名，必须与原始字段表的签名一致
	fields := []Field{
		{"appid", "wx1"},
		{"mch_id", "10001"},
		{"nonce_str", "abc"},
		{"out_trade_no", "ORDER1"},
		{"total_fee", "100"},
	}
	doc := EncodeXML(fields)

	decoded := make([]Field, 0, len(fields))
	for _, f := range fields {
		if v := MatchField(doc, f.Name); v != "" {
			decoded = append(decoded, Field{f.Name, v})
		}
	}
	if Sign(fields, "key1") != Sign(decoded, "key1") {
		t.Error("signature over decoded fields differs from original")
	}
}

func TestCouponFields(t *testing.T) {
	doc := "<xml>" +
		"<coupon_count>2</coupon_count>" +
		"<coupon_fee>15</coupon_fee>" +
		"<coupon_fee_0>10</coupon_fee_0>" +
		"<coupon_id_0><![CDATA[CID0]]></coupon_id_0>" +
		"<coupon_type_0><![CDATA[CASH]]></coupon_type_0>" +
		"<coupon_fee_1>5</coupon_fee_1>" +
		"<coupon_id_1><![CDATA[CID1]]></coupon_id_1>" +
		"<coupon_type_1><![CDATA[NO_CASH]]></coupon_type_1>" +
		"</xml>"

	fields := couponFields(doc)
	want := []Field{
		{"coupon_count", "2"},
		{"coupon_fee", "15"},
		{"coupon_fee_0", "10"},
		{"coupon_id_0", "CID0"},
		{"coupon_type_0", "CASH"},
		{"coupon_fee_1", "5"},
		{"coupon_id_1", "CID1"},
		{"coupon_type_1", "NO_CASH"},
	}
	if len(fields) != len(want) {
		t.Fatalf("got %d fields, want %d: %+v", len(fields), len(want), fields)
	}
	for i := range want {
		if fields[i] != want[i] {
			t.Errorf("field %d: got %+v want %+v", i, fields[i], want[i])
		}
	}

	// 签名串中恰好追加六段下标字段，按下标升序、同下标内 fee/id/type 成组
	s := CanonicalString(fields, "k")
	wantOrder := "coupon_count=2&coupon_fee=15" +
		"&coupon_fee_0=10&coupon_id_0=CID0&coupon_type_0=CASH" +
		"&coupon_fee_1=5&coupon_id_1=CID1&coupon_type_1=NO_CASH" +
		"&key=k"
	if s != wantOrder {
		t.Errorf("coupon canonical order mismatch:\n got %s\nwant %s", s, wantOrder)
	}
}

func TestCouponFieldsAbsentIndexSkipped(t *testing.T) {
	doc := "<xml><coupon_count>2</coupon_count><coupon_fee_1>5</coupon_fee_1></xml>"
	fields := couponFields(doc)
	for _, f := range fields {
		if strings.HasSuffix(f.Name, "_0") {
			t.Errorf("absent index 0 field emitted: %+v", f)
		}
	}
}

func TestCouponFieldsBadCount(t *testing.T) {
	if f := couponFields("<xml><coupon_count><![CDATA[abc]]></coupon_count></xml>"); f != nil {
		t.Errorf("non-numeric coupon_count should yield nothing, got %+v", f)
	}
	if f := couponFields("<xml></xml>"); f != nil {
		t.Errorf("missing coupon_count should yield nothing, got %+v", f)
	}
}

func TestIsReturnSuccessAck(t *testing.T) {
	ok := "<xml><return_code><![CDATA[SUCCESS]]></return_code><result_code><![CDATA[SUCCESS]]></result_code></xml>"
	if !IsReturnSuccessAck(ok) {
		t.Error("success prefix not recognized")
	}

	// 严格前缀：子串命中但不在开头必须判为失败
	shifted := "<xml><return_msg><![CDATA[OK]]></return_msg><return_code><![CDATA[SUCCESS]]></return_code></xml>"
	if IsReturnSuccessAck(shifted) {
		t.Error("substring hit must not pass the strict prefix check")
	}
	if IsReturnSuccessAck("<xml><return_code><![CDATA[FAIL]]></return_code></xml>") {
		t.Error("FAIL return_code passed")
	}
}
