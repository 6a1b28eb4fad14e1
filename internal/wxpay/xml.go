package wxpay

import (
	"regexp"
	"strconv"
	"strings"
)

// 应答级成功只认严格前缀，回调验证另走子串检查 + 验签，两者信任级别不同
const successAckPrefix = "<xml><return_code><![CDATA[SUCCESS]]></return_code>"

var (
	prepayIDPattern      = regexp.MustCompile(`<prepay_id><!\[CDATA\[([^\]]+)\]\]></prepay_id>`)
	refundIDPattern      = regexp.MustCompile(`<refund_id><!\[CDATA\[([^\]]+)\]\]></refund_id>`)
	refundStatusPattern  = regexp.MustCompile(`<refund_status_0><!\[CDATA\[([^\]]+)\]\]></refund_status_0>`)
)

// EncodeXML 把字段表编码为 <xml>...</xml> 请求体。
// 值原样写入，不做实体转义；调用方保证值只含协议安全字符。
// 空值字段不输出 <name></name>，与签名的跳过规则一致。
func EncodeXML(fields []Field) string {
	var sb strings.Builder
	sb.WriteString("<xml>")
	for _, f := range fields {
		if f.Value == "" {
			continue
		}
		sb.WriteString("<")
		sb.WriteString(f.Name)
		sb.WriteString(">")
		sb.WriteString(f.Value)
		sb.WriteString("</")
		sb.WriteString(f.Name)
		sb.WriteString(">")
	}
	sb.WriteString("</xml>")
	return sb.String()
}

// MatchField 从回调/应答 XML 中取指定字段的值。
// 先按 CDATA 包裹匹配，取不到再按裸文本匹配（数字字段有时不带 CDATA）。
// 取不到返回空串，表示字段缺席，不是错误。
func MatchField(doc, name string) string {
	if m := regexp.MustCompile(`<` + name + `><!\[CDATA\[([^\]]+)\]\]></` + name + `>`).FindStringSubmatch(doc); m != nil {
		return m[1]
	}
	if m := regexp.MustCompile(`<` + name + `>([^<]+)</` + name + `>`).FindStringSubmatch(doc); m != nil {
		return m[1]
	}
	return ""
}

// couponFields 展开 coupon_count 驱动的下标字段组。
// coupon_count 解析为非负整数 N 时，依次取 coupon_fee_{i}、coupon_id_{i}、
// coupon_type_{i}（i 从 0 到 N-1，按下标升序，每个下标内 fee/id/type 成组），
// 只收非空字段。
func couponFields(doc string) []Field {
	count := MatchField(doc, "coupon_count")
	if count == "" {
		return nil
	}
	n, err := strconv.Atoi(count)
	if err != nil || n < 0 {
		return nil
	}

	fields := []Field{{"coupon_count", count}}
	if fee := MatchField(doc, "coupon_fee"); fee != "" {
		fields = append(fields, Field{"coupon_fee", fee})
	}
	for i := 0; i < n; i++ {
		idx := strconv.Itoa(i)
		if v := MatchField(doc, "coupon_fee_"+idx); v != "" {
			fields = append(fields, Field{"coupon_fee_" + idx, v})
		}
		if v := MatchField(doc, "coupon_id_"+idx); v != "" {
			fields = append(fields, Field{"coupon_id_" + idx, v})
		}
		if v := MatchField(doc, "coupon_type_"+idx); v != "" {
			fields = append(fields, Field{"coupon_type_" + idx, v})
		}
	}
	return fields
}

// IsReturnSuccessAck 出站请求的应答是否以成功前缀开头（严格前缀，非子串）
func IsReturnSuccessAck(doc string) bool {
	return strings.HasPrefix(doc, successAckPrefix)
}

func hasReturnSuccess(doc string) bool {
	return strings.Contains(doc, "<return_code><![CDATA[SUCCESS]]></return_code>")
}

func hasResultSuccess(doc string) bool {
	return strings.Contains(doc, "<result_code><![CDATA[SUCCESS]]></result_code>")
}
