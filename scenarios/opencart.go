package scenarios

import (
	"strings"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/networkteam/pagetour/page"
	"github.com/networkteam/pagetour/scenario"
)

func openCartSearch(storeURL string) func(t *scenario.T) error {
	return func(t *scenario.T) error {
		b := t.Base()
		if err := b.Navigate(storeURL); err != nil {
			return err
		}

		search := page.Name("search")
		if err := b.SetText(search, "MacBook"); err != nil {
			return err
		}
		field, err := b.FindOne(search)
		if err != nil {
			return err
		}
		if err := field.Press("Enter"); err != nil {
			return err
		}

		if _, err := b.WaitUntilVisible(page.CSS(".product-thumb"), 15*time.Second); err != nil {
			return err
		}
		products, err := b.FindAll(page.CSS(".product-thumb h4"))
		if err != nil {
			return err
		}
		require.NotEmpty(t, products)

		for _, product := range products {
			name, err := product.InnerText()
			if err != nil {
				return err
			}
			t.Step("Found product", "name", strings.TrimSpace(name))
		}
		first, err := products[0].InnerText()
		if err != nil {
			return err
		}
		assert.Contains(t, first, "MacBook")
		return nil
	}
}
