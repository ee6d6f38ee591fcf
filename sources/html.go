package sources

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/juju/errors"

	"proxographer/proxlib"
)

const NameHTML = "html"

type htmlSource struct{}

func (htmlSource) Name() string {
	return NameHTML
}

// Parse extracts ip:port pairs from an HTML page with a proxy table.
// The usual layout of such pages is a <table> where the first cell of
// a row is the IP and the second one is the port. Rows which do not
// look like that are skipped, not failed on: these pages carry headers,
// ads and whatnot.
func (htmlSource) Parse(r io.Reader) ([]proxlib.Entry, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, errors.Annotate(err, "cannot parse HTML")
	}

	entries := []proxlib.Entry{}

	doc.Find("table tbody tr").Each(func(_ int, sel *goquery.Selection) {
		ip := strings.TrimSpace(sel.Find("td").Eq(0).Text())
		port := strings.TrimSpace(sel.Find("td").Eq(1).Text())

		if ip == "" || port == "" {
			return
		}

		entries = append(entries, proxlib.Entry{
			IP:   ip,
			Port: port,
		})
	})

	return entries, nil
}

// NewHTML makes a source for feeds which publish proxies as an HTML
// table instead of plain text.
func NewHTML() proxlib.Source {
	return htmlSource{}
}
