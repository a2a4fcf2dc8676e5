// Package barcode 负责条码输入校验与条码位图生成。
// 校验发生在任何缓存查询或生成之前；未通过校验的输入由调用方静默跳过。
package barcode

import (
	"bytes"
	"fmt"
	"image/png"
	"regexp"
	"strings"

	bb "github.com/boombuler/barcode"
	"github.com/boombuler/barcode/codabar"
	"github.com/boombuler/barcode/code128"
	"github.com/boombuler/barcode/code39"
	"github.com/boombuler/barcode/ean"
	"github.com/boombuler/barcode/twooffive"
	qrcode "github.com/skip2/go-qrcode"
)

// Symbology 标识一种条码符号体系。
type Symbology string

const (
	QRCode  Symbology = "qrcode"
	EAN13   Symbology = "ean13"
	EAN8    Symbology = "ean8"
	Code39  Symbology = "code39"
	Code128 Symbology = "code128"
	NW7     Symbology = "nw7" // Codabar
	ITF14   Symbology = "itf14"
	UPCA    Symbology = "upca"
)

// Parse 规范化符号体系名称；未识别时返回 false。
func Parse(s string) (Symbology, bool) {
	sym := Symbology(strings.ToLower(strings.TrimSpace(s)))
	switch sym {
	case QRCode, EAN13, EAN8, Code39, Code128, NW7, ITF14, UPCA:
		return sym, true
	}
	return "", false
}

var (
	ean13Pattern  = regexp.MustCompile(`^\d{12,13}$`)
	ean8Pattern   = regexp.MustCompile(`^\d{7,8}$`)
	upcaPattern   = regexp.MustCompile(`^\d{11,12}$`)
	itf14Pattern  = regexp.MustCompile(`^\d{13,14}$`)
	code39Pattern = regexp.MustCompile(`^[0-9A-Z\-. $/+%]+$`)
	nw7Pattern    = regexp.MustCompile(`^[A-Da-d][0-9\-$:/.+]*[A-Da-d]$`)
)

// Validate 判断输入是否符合该符号体系的字符集与校验位规则。
// 带校验位的体系（EAN/UPC/ITF-14）在完整长度下验证校验位；
// 少一位的输入视为未含校验位，交由编码器补齐。
func (s Symbology) Validate(input string) bool {
	if input == "" {
		return false
	}
	switch s {
	case QRCode:
		return len(input) <= 500
	case EAN13:
		if !ean13Pattern.MatchString(input) {
			return false
		}
		return len(input) == 12 || checkDigit(input[:12]) == input[12:]
	case EAN8:
		if !ean8Pattern.MatchString(input) {
			return false
		}
		return len(input) == 7 || checkDigit(input[:7]) == input[7:]
	case UPCA:
		if !upcaPattern.MatchString(input) {
			return false
		}
		return len(input) == 11 || checkDigit(input[:11]) == input[11:]
	case ITF14:
		if !itf14Pattern.MatchString(input) {
			return false
		}
		return len(input) == 13 || checkDigit(input[:13]) == input[13:]
	case Code39:
		return code39Pattern.MatchString(input)
	case Code128:
		for _, r := range input {
			if r < 0x20 || r > 0x7e {
				return false
			}
		}
		return true
	case NW7:
		return nw7Pattern.MatchString(input)
	}
	return false
}

// checkDigit 计算 GS1 模 10 校验位（自右向左按 3/1 加权）。
func checkDigit(digits string) string {
	sum := 0
	weight := 3
	for i := len(digits) - 1; i >= 0; i-- {
		sum += int(digits[i]-'0') * weight
		weight = 4 - weight
	}
	return string(rune('0' + (10-sum%10)%10))
}

// Generate 将已通过校验的输入编码为 PNG 位图，尺寸以像素给出。
// 编码或缩放失败都视为资源生成失败，由调用方按致命错误处理。
func Generate(s Symbology, input string, widthPx, heightPx int) ([]byte, error) {
	if s == QRCode {
		side := widthPx
		if heightPx < side {
			side = heightPx
		}
		data, err := qrcode.Encode(input, qrcode.Medium, side)
		if err != nil {
			return nil, fmt.Errorf("生成 QR 码失败: %w", err)
		}
		return data, nil
	}

	var (
		code bb.Barcode
		err  error
	)
	switch s {
	case EAN13, EAN8:
		code, err = ean.Encode(input)
	case UPCA:
		// UPC-A 等价于前导 0 的 EAN-13；校验位在补 0 后保持不变
		code, err = ean.Encode("0" + input)
	case Code39:
		code, err = code39.Encode(input, false, false)
	case Code128:
		code, err = code128.Encode(input)
	case NW7:
		// codabar 编码器只认大写起止符
		code, err = codabar.Encode(strings.ToUpper(input))
	case ITF14:
		// 交错模式要求偶数位数：13 位输入先补齐校验位
		if len(input) == 13 {
			input += checkDigit(input)
		}
		code, err = twooffive.Encode(input, true)
	default:
		return nil, fmt.Errorf("未知的条码符号体系：%s", s)
	}
	if err != nil {
		return nil, fmt.Errorf("编码 %s 条码失败: %w", s, err)
	}

	scaled, err := bb.Scale(code, widthPx, heightPx)
	if err != nil {
		return nil, fmt.Errorf("缩放 %s 条码到 %dx%d 失败: %w", s, widthPx, heightPx, err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return nil, fmt.Errorf("编码条码 PNG 失败: %w", err)
	}
	return buf.Bytes(), nil
}
