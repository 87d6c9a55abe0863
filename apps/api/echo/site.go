package echoapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/maqomuz/maktab/core"
	"github.com/maqomuz/maktab/core/carousel"
	"github.com/maqomuz/maktab/core/contact"
	"github.com/maqomuz/maktab/core/employee"
	"github.com/maqomuz/maktab/core/news"
)

// excerptLimit caps how many runes of a news excerpt the slider card shows.
const excerptLimit = 160

// placeholderTitle fills in for records published without one.
const placeholderTitle = "Yangilik"

type siteApi struct {
	conf        *core.Config
	newsSvc     *news.Service
	employeeSvc *employee.Service
	contactSvc  *contact.Service
}

// registerSiteAPI mounts the public, read-only endpoints the school site
// renders from. No auth; list failures degrade to fallback content inside
// the services instead of surfacing here.
func registerSiteAPI(g *echo.Group, deps ServerDeps) {
	api := siteApi{
		conf:        deps.Conf,
		newsSvc:     deps.NewsSvc,
		employeeSvc: deps.EmployeeSvc,
		contactSvc:  deps.ContactSvc,
	}

	g.GET("/news", api.news)
	g.GET("/employees", api.employees)
	g.POST("/contact", api.contact)
}

func (api *siteApi) news(ctx echo.Context) error {
	opts := bindListOptions(ctx)
	if opts.Limit == 0 {
		opts.Limit = api.conf.UI.PaginationLimit
	}

	items, err := api.newsSvc.List(ctx.Request().Context(), opts)
	if err != nil {
		return errors.Wrap(err, "listing news")
	}

	cards := make([]NewsCard, 0, len(items))
	for _, n := range items {
		cards = append(cards, newNewsCard(n))
	}

	return ctx.JSON(http.StatusOK, NewsPage{
		Items: cards,
		Carousel: CarouselSettings{
			IntervalMS: api.conf.UI.SlideInterval.Milliseconds(),
			SettleMS:   api.conf.UI.SlideSettle.Milliseconds(),
			Layout:     carousel.LayoutFor(len(cards)),
		},
	})
}

func (api *siteApi) employees(ctx echo.Context) error {
	emps, err := api.employeeSvc.List(ctx.Request().Context(), bindListOptions(ctx))
	if err != nil {
		return errors.Wrap(err, "listing employees")
	}
	if emps == nil {
		emps = []employee.Employee{}
	}
	return ctx.JSON(http.StatusOK, emps)
}

func (api *siteApi) contact(ctx echo.Context) error {
	var msg contact.Message
	if err := ctx.Bind(&msg); err != nil {
		return errors.Wrap(err, "binding to Message")
	}

	if err := api.contactSvc.Send(ctx.Request().Context(), msg); err != nil {
		return errors.Wrap(err, "relaying contact message")
	}
	return ctx.JSON(http.StatusAccepted, SuccessResponse{
		Success: "Xabaringiz yuborildi. Tez orada siz bilan bog'lanamiz.",
	})
}

type (
	NewsPage struct {
		Items    []NewsCard       `json:"items"`
		Carousel CarouselSettings `json:"carousel"`
	}

	// NewsCard is a slider-ready rendition of a news item: placeholders for
	// missing title/date, excerpt truncated for the card.
	NewsCard struct {
		ID       string `json:"id"`
		Title    string `json:"title"`
		Category string `json:"category,omitempty"`
		Excerpt  string `json:"excerpt"`
		ImageURL string `json:"image_url,omitempty"`
		Date     string `json:"date"`
		Author   string `json:"author,omitempty"`
	}

	CarouselSettings struct {
		IntervalMS int64           `json:"interval_ms"`
		SettleMS   int64           `json:"settle_ms"`
		Layout     carousel.Layout `json:"layout"`
	}

	SuccessResponse struct {
		Success string `json:"success"`
	}
)

func newNewsCard(n news.News) NewsCard {
	card := NewsCard{
		ID:       n.ID,
		Title:    n.Title,
		Category: n.Category,
		Excerpt:  core.TruncateText(n.Excerpt, excerptLimit),
		ImageURL: n.ImageURL,
		Date:     n.Date,
		Author:   n.Author,
	}
	if card.Title == "" {
		card.Title = placeholderTitle
	}
	if card.Date == "" {
		card.Date = time.Now().Format(news.DateLayout)
	}
	return card
}
