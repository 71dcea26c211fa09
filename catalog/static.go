package catalog

import (
	"context"

	"github.com/storelab/shoprec/core"
)

// Static 是内存商品目录，用于测试/开发/原型。
type Static struct {
	Items []*core.Product
}

func (c *Static) Name() string { return "catalog.static" }

func (c *Static) FetchAllProducts(_ context.Context) ([]*core.Product, error) {
	out := make([]*core.Product, 0, len(c.Items))
	out = append(out, c.Items...)
	return out, nil
}
