package news

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"

	"fx-decision-bot/internal/logger"
	"fx-decision-bot/internal/types"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Scraper harvests economic-calendar events from the configured calendar
// page.
type Scraper struct {
	calendarURL string
	timeout     time.Duration
	now         func() time.Time
}

func NewScraper(calendarURL string, timeout time.Duration) *Scraper {
	return &Scraper{
		calendarURL: calendarURL,
		timeout:     timeout,
		now:         time.Now,
	}
}

// FetchCalendar scrapes the calendar table and returns all rows that carry
// a currency and an impact rating. Date and time cells apply to every
// following row until the next non-empty cell, so both are carried forward.
// Rows whose date or time cannot be parsed are skipped, never fatal.
func (s *Scraper) FetchCalendar(ctx context.Context) ([]types.NewsEvent, error) {
	logger.Info(ctx, "Starting calendar scrape", "url", s.calendarURL)

	c := colly.NewCollector(
		colly.AllowedDomains(getDomain(s.calendarURL)),
		colly.MaxDepth(1),
	)
	c.SetRequestTimeout(s.timeout)
	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("User-Agent", userAgent)
	})

	var events []types.NewsEvent
	currentDate := ""
	currentTime := "00:00"

	c.OnHTML("tr.calendar__row", func(e *colly.HTMLElement) {
		row := e.DOM

		if d := cellText(row, "td.calendar__date"); d != "" {
			currentDate = d
		}
		if currentDate == "" {
			return
		}

		rawTime := cellText(row, "td.calendar__time")
		if rawTime == "" {
			rawTime = currentTime
		}
		currentTime = rawTime

		title := cellText(row, "td.calendar__event")
		currency := cellText(row, "td.calendar__currency")
		impactTitle, _ := row.Find("td.calendar__impact span").Attr("title")
		impact, ok := ParseImpact(impactTitle)
		if title == "" || currency == "" || !ok {
			return
		}

		eventTime, err := CombineEventTime(s.now().Year(), currentDate, rawTime)
		if err != nil {
			logger.Warn(ctx, "Skipping calendar row with bad date/time", "error", err, "title", title)
			return
		}

		events = append(events, types.NewsEvent{
			Title:     title,
			Currency:  currency,
			Actual:    cellText(row, "td.calendar__actual"),
			Forecast:  cellText(row, "td.calendar__forecast"),
			Previous:  cellText(row, "td.calendar__previous"),
			Impact:    impact,
			EventTime: eventTime,
		})
	})

	c.OnError(func(r *colly.Response, err error) {
		logger.ErrorWithErr(ctx, "Calendar scrape error", err, "url", r.Request.URL.String())
	})

	if err := c.Visit(s.calendarURL); err != nil {
		return nil, fmt.Errorf("failed to visit %s: %w", s.calendarURL, err)
	}
	c.Wait()

	logger.Info(ctx, "Calendar scrape completed", "events", len(events))
	return events, nil
}

func cellText(row *goquery.Selection, selector string) string {
	return strings.TrimSpace(row.Find(selector).Text())
}

func getDomain(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
