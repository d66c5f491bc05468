package ipo

import (
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/sakuya10969/capital-lens/internal/apperr"
	"github.com/sakuya10969/capital-lens/internal/model"
)

var tableClassRegexp = regexp.MustCompile(`component.*table`)
var pdfHrefRegexp = regexp.MustCompile(`(?i)\.pdf`)

// ParseListingTable extracts IPO entries from the JPX listing page.
//
// JPX uses two physical rows per entry:
//
//	row 1 (8 cells): listing date (rowspan=2) | company (rowspan=2) | code | ... | offering price | unit
//	row 2 (6 cells): market segment | ...
//
// Consecutive rows are paired up to build each listing. A first row with
// fewer than 8 cells is skipped on its own, so a stray row cannot shift
// every following pair.
func ParseListingTable(pageHTML, origin string) ([]model.IpoListing, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return nil, apperr.NewParseError("JPX", err.Error())
	}

	table := doc.Find("table").FilterFunction(func(_ int, s *goquery.Selection) bool {
		class, _ := s.Attr("class")
		return tableClassRegexp.MatchString(class)
	}).First()
	if table.Length() == 0 {
		table = doc.Find("table").First()
	}
	if table.Length() == 0 {
		return nil, apperr.NewParseError("JPX", "no table element found on page")
	}

	rows := table.Find("tbody tr")
	if rows.Length() == 0 {
		rows = table.Find("tr")
	}

	var listings []model.IpoListing
	i := 0

	for i < rows.Length() {
		cells := rows.Eq(i).Find("td")

		// The main row has 8 cells; anything narrower is noise.
		if cells.Length() < 8 {
			i++
			continue
		}

		rawDate := cellText(cells.Eq(0))
		companyName := NormalizeCompanyName(firstTextNode(cells.Eq(1)))
		ticker := cellText(cells.Eq(2))
		rawPrice := cellText(cells.Eq(6))
		prospectusURL := findPdfLink(cells, origin)

		market := ""
		if i+1 < rows.Length() {
			cells2 := rows.Eq(i + 1).Find("td")
			if cells2.Length() > 0 {
				market = cellText(cells2.Eq(0))
				if prospectusURL == "" {
					prospectusURL = findPdfLink(cells2, origin)
				}
			}
			i += 2
		} else {
			i++
		}

		if companyName == "" || ticker == "" {
			continue
		}

		listing := model.IpoListing{
			CompanyName:   companyName,
			Ticker:        ticker,
			Market:        market,
			ListingDate:   ParseListingDate(rawDate),
			ProspectusURL: prospectusURL,
			GeneratedAt:   time.Now().UTC(),
		}
		if price, ok := ParsePrice(rawPrice); ok {
			listing.OfferingPrice = &price
		}

		listings = append(listings, listing)
	}

	return listings, nil
}

func cellText(cell *goquery.Selection) string {
	return strings.TrimSpace(cell.Text())
}

// firstTextNode returns the first non-empty text node inside the cell in
// document order. The company cell can carry a decorative subtitle in a
// nested element; only the leading text is the company name.
func firstTextNode(cell *goquery.Selection) string {
	for _, node := range cell.Nodes {
		if text := findTextNode(node); text != "" {
			return text
		}
	}
	return ""
}

func findTextNode(n *html.Node) string {
	if n.Type == html.TextNode {
		if text := strings.TrimSpace(n.Data); text != "" {
			return text
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if text := findTextNode(c); text != "" {
			return text
		}
	}
	return ""
}

// findPdfLink returns the absolute URL of the first PDF anchor in the
// given cells, or "" when none exists.
func findPdfLink(cells *goquery.Selection, origin string) string {
	found := ""
	cells.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, _ := a.Attr("href")
		if href != "" && pdfHrefRegexp.MatchString(href) {
			found = resolveURL(origin, href)
			return false
		}
		return true
	})
	return found
}

func resolveURL(origin, href string) string {
	if strings.HasPrefix(href, "http") {
		return href
	}
	base := strings.TrimRight(origin, "/")
	if strings.HasPrefix(href, "/") {
		return base + href
	}
	return base + "/" + href
}
