package config

import "strings"

// normalize expands and cleans user-supplied paths and fills gaps with
// defaults so the rest of the program never re-checks them.
func (c *Config) normalize() error {
	for _, field := range []*string{
		&c.Paths.Workbook,
		&c.Paths.FilesRoot,
		&c.Paths.SessionDB,
		&c.Paths.LogDir,
	} {
		trimmed := strings.TrimSpace(*field)
		if trimmed == "" {
			*field = ""
			continue
		}
		expanded, err := expandPath(trimmed)
		if err != nil {
			return err
		}
		*field = expanded
	}

	if strings.TrimSpace(c.Paths.SessionDB) == "" {
		expanded, err := expandPath(Default().Paths.SessionDB)
		if err != nil {
			return err
		}
		c.Paths.SessionDB = expanded
	}

	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	if c.Oracle.TimeoutSeconds <= 0 {
		c.Oracle.TimeoutSeconds = Default().Oracle.TimeoutSeconds
	}
	if strings.TrimSpace(c.Oracle.BaseURL) == "" {
		c.Oracle.BaseURL = Default().Oracle.BaseURL
	}
	return nil
}
