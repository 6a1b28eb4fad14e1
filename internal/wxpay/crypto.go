package wxpay

import (
	"crypto/aes"
	"encoding/base64"
	"fmt"
)

// DecryptReqInfo 解密退款回调中的 req_info 字段：
// （1）对加密串做 base64 解码
// （2）对商户 key 做 md5，得到 32 位小写 key，直接作为密钥字节
// （3）AES-256-ECB 解密（PKCS7 填充）
// 任何一步失败都返回 FailureDecrypt，调用方以空串哨兵处理。
func DecryptReqInfo(reqInfo, mchKey string) (string, error) {
	key := MD5Hex(mchKey)

	data, err := base64.StdEncoding.DecodeString(reqInfo)
	if err != nil {
		return "", &Error{Kind: FailureDecrypt, Op: "DecryptReqInfo", Err: err}
	}

	block, err := aes.NewCipher([]byte(key))
	if err != nil {
		return "", &Error{Kind: FailureDecrypt, Op: "DecryptReqInfo", Err: err}
	}

	size := block.BlockSize()
	if len(data) == 0 || len(data)%size != 0 {
		return "", &Error{Kind: FailureDecrypt, Op: "DecryptReqInfo",
			Msg: fmt.Sprintf("ciphertext length %d not a multiple of block size", len(data))}
	}

	plain := make([]byte, len(data))
	for bs, be := 0, size; bs < len(data); bs, be = bs+size, be+size {
		block.Decrypt(plain[bs:be], data[bs:be])
	}

	plain, err = stripPKCS7(plain, size)
	if err != nil {
		return "", &Error{Kind: FailureDecrypt, Op: "DecryptReqInfo", Err: err}
	}
	return string(plain), nil
}

func stripPKCS7(b []byte, blockSize int) ([]byte, error) {
	n := int(b[len(b)-1])
	if n == 0 || n > blockSize || n > len(b) {
		return nil, fmt.Errorf("bad pkcs7 padding length %d", n)
	}
	for _, c := range b[len(b)-n:] {
		if int(c) != n {
			return nil, fmt.Errorf("bad pkcs7 padding byte")
		}
	}
	return b[:len(b)-n], nil
}
