package server

// Server joins the HTTP handlers of the tracker stub.
type Server struct {
	CatalogServer
}

func NewServer(
	catalogServer CatalogServer,
) Server {
	return Server{
		CatalogServer: catalogServer,
	}
}
