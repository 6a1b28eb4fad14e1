package wxpay

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

// Field 网关请求/回调中的一个参数，按微信文档的参数顺序排列使用
type Field struct {
	Name  string
	Value string
}

// MD5Hex 计算输入的 MD5 并返回小写十六进制
func MD5Hex(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

// VerifyMD5Hex 大小写不敏感比对（网关自身返回的摘要大小写不一致）
func VerifyMD5Hex(input, expected string) bool {
	return strings.EqualFold(MD5Hex(input), expected)
}

// CanonicalString 生成待签名字符串: name=value&name=value...&key=mchKey
// fields 必须已按网关文档顺序排列；空值字段整体跳过，首个非空字段前不带 &。
// 验签时必须用与签名完全相同的顺序与跳过规则重建该字符串。
func CanonicalString(fields []Field, mchKey string) string {
	var sb strings.Builder
	for _, f := range fields {
		if f.Value == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("&")
		}
		sb.WriteString(f.Name)
		sb.WriteString("=")
		sb.WriteString(f.Value)
	}
	sb.WriteString("&key=")
	sb.WriteString(mchKey)
	return sb.String()
}

// Sign 对字段表签名，返回大写 MD5（网关 sign 字段始终为大写）
func Sign(fields []Field, mchKey string) string {
	return strings.ToUpper(MD5Hex(CanonicalString(fields, mchKey)))
}
