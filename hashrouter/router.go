// Package hashrouter maps URL fragments such as "#/clientes/42?tab=info"
// to view callbacks. Rendering goes through a ContentSink and the current
// fragment lives in a Location, so the router runs the same way in a
// browser bridge, a terminal or a test.
//
// A Router is driven from a single goroutine: routes are registered before
// Init and every later call comes from the Location's change notifications.
package hashrouter

import (
	"fmt"
	"regexp"

	"nmalls-recorrencia/logger"
)

// Params holds query and path parameters of a navigation.
type Params map[string]string

// Callback renders one view. A returned error or a panic shows the error view.
type Callback func(Params) error

// ContentSink is where views are drawn.
type ContentSink interface {
	Render(html string)
	ShowLoading()
	HideLoading()
}

// DefaultErrorView is rendered when a view fails.
const DefaultErrorView = `<div class="alert alert-danger mt-4">
  <h4 class="alert-heading">Erro!</h4>
  <p>Ocorreu um erro ao carregar esta página. Tente novamente mais tarde.</p>
</div>`

var placeholderRe = regexp.MustCompile(`\{\{\s*([^{}\s]+)\s*\}\}`)

type dynamicRoute struct {
	pattern  pattern
	callback Callback
}

type Router struct {
	exact       map[string]Callback
	dynamic     []dynamicRoute
	defaultPath string
	templates   map[string]string
	errorView   string

	sink     ContentSink
	location Location
}

type Option func(*Router)

// WithTemplates registers template snippets by id.
func WithTemplates(templates map[string]string) Option {
	return func(r *Router) {
		for id, snippet := range templates {
			r.templates[id] = snippet
		}
	}
}

func WithErrorView(view string) Option {
	return func(r *Router) {
		r.errorView = view
	}
}

func New(sink ContentSink, location Location, opts ...Option) *Router {
	r := &Router{
		exact:       map[string]Callback{},
		defaultPath: "/",
		templates:   map[string]string{},
		errorView:   DefaultErrorView,
		sink:        sink,
		location:    location,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// AddRoute registers a callback for an exact pattern ("/clientes") or a
// parameterized one ("/clientes/:id"). Registering a pattern again
// replaces its callback.
func (r *Router) AddRoute(rawPattern string, callback Callback) {
	p := parsePattern(rawPattern)
	if !p.parameterized() {
		r.exact[rawPattern] = callback
		return
	}

	for i := range r.dynamic {
		if r.dynamic[i].pattern.raw == rawPattern {
			r.dynamic[i].callback = callback
			return
		}
	}
	r.dynamic = append(r.dynamic, dynamicRoute{pattern: p, callback: callback})
}

func (r *Router) SetDefaultRoute(path string) {
	r.defaultPath = path
}

func (r *Router) AddTemplate(id, snippet string) {
	r.templates[id] = snippet
}

// Init subscribes to fragment changes and handles the current fragment.
func (r *Router) Init() {
	r.location.OnChange(r.HandleRouteChange)
	r.HandleRouteChange()
}

// HandleRouteChange navigates to the path and query held by the current
// fragment, or to the default route when the fragment is empty.
func (r *Router) HandleRouteChange() {
	path, rawQuery := SplitFragment(r.location.Fragment())
	if path == "" && rawQuery == "" {
		path = r.defaultPath
	}
	r.NavigateTo(path, ParseQuery(rawQuery))
}

// NavigateTo renders path only when the fragment already shows it. An
// unknown path rewrites the fragment to the default route; a known path
// that differs from the fragment rewrites the fragment, keeping params as
// its query, and leaves rendering to the resulting change notification.
// A "?k=v" suffix on path is merged into params; explicit params win.
func (r *Router) NavigateTo(path string, params Params) {
	r.sink.ShowLoading()

	path, rawQuery := SplitFragment(path)
	if rawQuery != "" {
		merged := ParseQuery(rawQuery)
		for k, v := range params {
			merged[k] = v
		}
		params = merged
	}

	callback := r.FindRouteCallback(path)
	if callback == nil {
		logger.Logger.Debug().Str("path", path).Str("default", r.defaultPath).Msg("Unknown route, redirecting")
		r.location.SetFragment(r.defaultPath)
		return
	}

	if current, _ := SplitFragment(r.location.Fragment()); current != path {
		fragment := path
		if len(params) > 0 {
			fragment += "?" + EncodeQuery(params)
		}
		r.location.SetFragment(fragment)
		return
	}

	if params == nil {
		params = Params{}
	}
	if err := r.invoke(callback, params); err != nil {
		logger.Logger.Error().Err(err).Str("path", path).Msg("Erro ao carregar a rota")
		r.ShowRouteError()
	}
}

func (r *Router) invoke(callback Callback, params Params) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("route panic: %v", rec)
		}
	}()
	return callback(params)
}

// FindRouteCallback resolves path, trying exact patterns before
// parameterized ones in registration order. The callback returned for a
// parameterized match adds the captured segments to the params it is
// given; captures win over query keys of the same name. Nil when nothing
// matches.
func (r *Router) FindRouteCallback(path string) Callback {
	if callback, ok := r.exact[path]; ok {
		return callback
	}

	for _, route := range r.dynamic {
		values, ok := route.pattern.match(path)
		if !ok {
			continue
		}
		names := route.pattern.captures
		callback := route.callback
		return func(query Params) error {
			params := make(Params, len(query)+len(names))
			for k, v := range query {
				params[k] = v
			}
			for i, name := range names {
				params[name] = values[i]
			}
			return callback(params)
		}
	}
	return nil
}

// RenderContent hides the loading indicator and draws html.
func (r *Router) RenderContent(html string) {
	r.sink.HideLoading()
	r.sink.Render(html)
}

// RenderTemplate fills the {{ key }} placeholders of a registered snippet
// and renders it. Placeholders without data are left as they are; an
// unknown id shows the error view.
func (r *Router) RenderTemplate(id string, data map[string]any) {
	snippet, ok := r.templates[id]
	if !ok {
		logger.Logger.Error().Str("template", id).Msg("Template não encontrado")
		r.ShowRouteError()
		return
	}
	r.RenderContent(FillTemplate(snippet, data))
}

// FillTemplate substitutes {{ key }} placeholders from data.
func FillTemplate(snippet string, data map[string]any) string {
	return placeholderRe.ReplaceAllStringFunc(snippet, func(m string) string {
		key := placeholderRe.FindStringSubmatch(m)[1]
		if v, ok := data[key]; ok {
			return fmt.Sprint(v)
		}
		return m
	})
}

// ShowRouteError draws the generic error view.
func (r *Router) ShowRouteError() {
	r.sink.HideLoading()
	r.sink.Render(r.errorView)
}
