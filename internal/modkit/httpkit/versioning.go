package httpkit

import (
	"net/http"
	"strings"
)

// MountAPI mounts a subrouter under /api, or /api/{version} when version is set,
// applies the scope middleware, then invokes mount to register routes on it
//
// example:
//
//	httpkit.MountAPI(r, "", httpkit.CommonStack(o), func(api httpkit.Router) {
//	  market.MountRoutes(api)
//	})
func MountAPI(r Router, version string, mw []func(http.Handler) http.Handler, mount func(Router)) {
	prefix := "/api"
	if ver := strings.Trim(version, "/"); ver != "" {
		prefix += "/" + ver
	}
	MountUnder(r, prefix, mw, mount)
}
