package kwpic

// Header parsers register themselves with internal/registry.
import (
	_ "github.com/simonhull/kwpic/internal/fixed"
	_ "github.com/simonhull/kwpic/internal/tagged"
)
