package main

import (
	"fmt"
	"html"
	"net/http"
	"sort"
	"strings"

	"github.com/gofiber/fiber/v2"
)

func (api *Api) sitemapRoutes(router fiber.Router) {
	router.Get("/", api.Sitemap)
}

// Sitemap lists every registered route as a small HTML page.
func (api *Api) Sitemap(c *fiber.Ctx) error {
	routes := c.App().GetRoutes(true)

	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Path == routes[j].Path {
			return routes[i].Method < routes[j].Method
		}
		return routes[i].Path < routes[j].Path
	})

	var b strings.Builder

	b.WriteString("<h1>Star Wars API</h1><ul>")

	for _, r := range routes {
		if r.Method == http.MethodHead || r.Method == http.MethodOptions {
			continue
		}

		fmt.Fprintf(&b, "<li>%s %s</li>", r.Method, html.EscapeString(r.Path))
	}

	b.WriteString("</ul>")

	c.Type("html")
	return c.Status(http.StatusOK).SendString(b.String())
}
