package runner

//go:generate mockgen -source=./runner.go -destination=./mock_extractor_test.go -package=runner FactsExtractor
