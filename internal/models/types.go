package models

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// StringArray 字符串数组类型，用于存储款式选项等
type StringArray []string

// Value 实现 driver.Valuer 接口
func (s StringArray) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

// Scan 实现 sql.Scanner 接口
func (s *StringArray) Scan(value interface{}) error {
	if value == nil {
		*s = StringArray{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		if text, ok := value.(string); ok {
			bytes = []byte(text)
		} else {
			return nil
		}
	}
	return json.Unmarshal(bytes, s)
}

// GalleryMap 款式选项到画册图片的映射
type GalleryMap map[string][]string

// Value 实现 driver.Valuer 接口
func (g GalleryMap) Value() (driver.Value, error) {
	if g == nil {
		return nil, nil
	}
	return json.Marshal(g)
}

// Scan 实现 sql.Scanner 接口
func (g *GalleryMap) Scan(value interface{}) error {
	if value == nil {
		*g = make(GalleryMap)
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		if text, ok := value.(string); ok {
			bytes = []byte(text)
		} else {
			return nil
		}
	}
	return json.Unmarshal(bytes, g)
}

// Points 统一积分类型（整数精度）
type Points struct {
	decimal.Decimal
}

// NewPointsFromDecimal 从 decimal 创建积分
func NewPointsFromDecimal(amount decimal.Decimal) Points {
	return Points{Decimal: amount.Round(0)}
}

// NewPointsFromInt 从整数创建积分
func NewPointsFromInt(amount int64) Points {
	return Points{Decimal: decimal.NewFromInt(amount)}
}

// MarshalJSON 统一输出整数
func (p Points) MarshalJSON() ([]byte, error) {
	return []byte(p.Decimal.Round(0).StringFixed(0)), nil
}

// UnmarshalJSON 解析积分（字符串或数字）
func (p *Points) UnmarshalJSON(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return err
		}
		p.Decimal = d.Round(0)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	p.Decimal = decimal.NewFromFloat(f).Round(0)
	return nil
}

// Value 用于数据库写入
func (p Points) Value() (driver.Value, error) {
	return p.Decimal.Round(0).Value()
}

// Scan 用于数据库读取
func (p *Points) Scan(value interface{}) error {
	if err := p.Decimal.Scan(value); err != nil {
		return err
	}
	p.Decimal = p.Decimal.Round(0)
	return nil
}

// String 返回整数格式
func (p Points) String() string {
	return p.Decimal.Round(0).StringFixed(0)
}
