package requirements

// skillAliases maps a canonical skill name to the surface forms the
// tokenizer should accept as a match for it. Alias lists are
// bidirectional in spirit (any alias matches the canonical entry) but
// stored keyed by canonical name, since `normalized_key` is always derived
// from the canonical `raw_text`, never from whichever alias happened to
// match.
var skillAliases = map[string][]string{
	"Go":                    {"go", "golang"},
	"Python":                {"python"},
	"FastAPI":               {"fastapi"},
	"Django":                {"django"},
	"Flask":                 {"flask"},
	"Node.js":               {"node", "node.js", "nodejs"},
	"JavaScript":            {"javascript", "js"},
	"TypeScript":            {"typescript", "ts"},
	"React":                 {"react", "reactjs"},
	"PostgreSQL":            {"postgresql", "postgres"},
	"pgvector":              {"pgvector"},
	"SQL":                   {"sql"},
	"Redis":                 {"redis"},
	"Kafka":                 {"kafka"},
	"RabbitMQ":               {"rabbitmq", "rabbit mq"},
	"Celery":                {"celery"},
	"Docker":                {"docker"},
	"Docker Compose":        {"docker compose", "docker-compose"},
	"Kubernetes":            {"kubernetes", "k8s"},
	"Airflow":               {"airflow"},
	"Prometheus":            {"prometheus"},
	"Grafana":               {"grafana"},
	"gRPC":                  {"grpc"},
	"REST":                  {"rest", "rest api"},
	"WebSocket":             {"websocket", "web socket"},
	"Django REST Framework": {"drf", "django rest framework", "django-rest-framework"},
	"ООП":                   {"ооп", "oop", "object oriented programming", "object-oriented programming"},
	"Async":                 {"async", "asyncio", "асинхрон", "асинхронность", "асинхронный"},
	"pytest":                {"pytest", "py test"},
	"Git":                   {"git"},
	"CI/CD":                 {"ci/cd", "ci cd", "cicd"},
	"Linux":                 {"linux"},
	"gRPC-Gateway":          {"grpc gateway", "grpc-gateway"},
}

// AliasesByNormalizedKey indexes skillAliases by NormalizeKey(canonical),
// the same key VacancyRequirement.normalized_key stores, so the matching
// engine's layer-1 alias fallback (§4.5) can look up a requirement's
// alias surface forms without duplicating the table.
func AliasesByNormalizedKey() map[string][]string {
	out := make(map[string][]string, len(skillAliases))
	for canonical, aliases := range skillAliases {
		out[NormalizeKey(canonical)] = aliases
	}
	return out
}
