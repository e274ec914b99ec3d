package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIPrefix is where every versioned route is mounted
const APIPrefix = "/api/v1"

type route struct {
	method  string
	path    string
	handler gin.HandlerFunc
}

// routeGroup is one area of the API: a prefix, its own middleware and its routes
type routeGroup struct {
	prefix     string
	middleware []gin.HandlerFunc
	routes     []route
}

func (g *routeGroup) get(path string, h gin.HandlerFunc) *routeGroup {
	g.routes = append(g.routes, route{method: http.MethodGet, path: path, handler: h})
	return g
}

func (g *routeGroup) post(path string, h gin.HandlerFunc) *routeGroup {
	g.routes = append(g.routes, route{method: http.MethodPost, path: path, handler: h})
	return g
}

func (g *routeGroup) put(path string, h gin.HandlerFunc) *routeGroup {
	g.routes = append(g.routes, route{method: http.MethodPut, path: path, handler: h})
	return g
}

// apiGroups is the route table of the service. verifyGuard, when non-nil,
// runs in front of the public verification routes only.
func apiGroups(h Handlers, verifyGuard gin.HandlerFunc) []*routeGroup {
	letters := &routeGroup{prefix: "/letters"}
	letters.post("", h.Letters.Issue).
		post("/reserve", h.Letters.Reserve).
		get("", h.Letters.List).
		get("/stats", h.Letters.Stats).
		get("/export", h.Letters.Export).
		get("/lookup", h.Letters.Lookup).
		get("/:id", h.Letters.GetByID).
		put("/:id", h.Letters.Update)

	counters := &routeGroup{prefix: "/counters"}
	counters.get("", h.Counters.List).
		put("/:key", h.Counters.Override)

	catalog := &routeGroup{prefix: "/catalog"}
	catalog.get("/letter-types", h.Catalog.LetterTypes).
		get("/divisions", h.Catalog.Divisions)

	public := &routeGroup{prefix: "/public"}
	if verifyGuard != nil {
		public.middleware = append(public.middleware, verifyGuard)
	}
	public.get("/verify", h.Verify.Verify).
		get("/verify/*number", h.Verify.Verify)

	system := &routeGroup{prefix: "/system"}
	system.get("/info", h.System.GetSystemInfo)

	return []*routeGroup{letters, counters, catalog, public, system}
}

// mountAPI registers groups under APIPrefix
func mountAPI(engine *gin.Engine, groups []*routeGroup) {
	api := engine.Group(APIPrefix)
	for _, g := range groups {
		rg := api.Group(g.prefix, g.middleware...)
		for _, r := range g.routes {
			rg.Handle(r.method, r.path, r.handler)
		}
	}
}
