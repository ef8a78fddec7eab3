// Entityvalidate checks entities against the field specifications declared
// for their entity type and variant.
//
// Usage:
//
//	# Validate an issue node read from a JSON file
//	entityvalidate validate --type node --bundle issue entity.json
//
//	# Print every error instead of failing on the first report
//	entityvalidate validate --type node --bundle issue --silent --lang de entity.json
//
//	# Show the resolved field specifications
//	entityvalidate fields --type node --bundle issue
//
//	# Create the schema tables in PostgreSQL
//	entityvalidate migrate
//
//	# Copy a YAML catalog into Redis
//	entityvalidate publish --from schema.yaml
//
// Configuration is read from EV_* environment variables and an optional .env file.
package main

func main() {
	Execute()
}
