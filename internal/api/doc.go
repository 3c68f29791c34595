// Package api provides the catalog REST API.
//
//	@title			Catalog API
//	@version		1.0
//	@description	Greeting endpoints and product CRUD
//	@BasePath		/
package api
