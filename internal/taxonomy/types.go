package taxonomy

// Class is a single weakness class in the registry. The ID is the CWE
// identifier (e.g., "CWE-78") and doubles as the corpus subdirectory name.
type Class struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// registryFile is the top-level YAML structure of a classes file.
type registryFile struct {
	Classes []Class `yaml:"classes"`
}
