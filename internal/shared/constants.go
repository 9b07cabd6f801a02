package shared

// DefaultCommonPorts are the local development ports checked by a common scan.
var DefaultCommonPorts = []uint16{3000, 3001, 4200, 5000, 5173, 8000, 8080, 9000}

var ServiceLabels = map[uint16]string{
	80:    "HTTP",
	443:   "HTTPS",
	1433:  "MSSQL",
	3000:  "React/Node",
	3001:  "Next.js",
	3306:  "MySQL",
	4200:  "Angular",
	4873:  "Verdaccio",
	5000:  "Flask",
	5173:  "Vite",
	5432:  "PostgreSQL",
	5858:  "Java Debug",
	6379:  "Redis",
	8000:  "HTTP Dev",
	8080:  "HTTP Alt",
	8081:  "App Server",
	9000:  "PHP-FPM",
	9229:  "Node Debug",
	27017: "MongoDB",
}

// ServiceLabel returns the well-known service for port, or "" if none.
func ServiceLabel(port uint16) string {
	return ServiceLabels[port]
}
