/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package sources

import (
	"fmt"
	"io"
	"strings"

	"github.com/suparena/agml/errors"
	"github.com/suparena/agml/internal/term"
)

const copyrightWidth = 57

// PrintCopyright writes the license and citation block for a dataset. This is
// the same message shown when the dataset is first downloaded.
func (s *Tables) PrintCopyright(w io.Writer, name string) error {
	if _, ok := s.Lookup(name); !ok {
		return errors.NewInvalidNameError("public source", name, Suggest(name, s.Public.Keys()))
	}
	license, citation := s.citationFields(name)
	docs := ""
	if record, ok := s.Lookup(name); ok {
		if v, ok := record.Get("docs_url"); ok {
			docs, _ = v.(string)
		}
	}

	title := " CITATION AND LICENSE "
	side := (copyrightWidth - len(title)) / 2
	var b strings.Builder
	b.WriteString(strings.Repeat("=", side) + title + strings.Repeat("=", copyrightWidth-side-len(title)) + "\n")
	fmt.Fprintf(&b, "You are using the %s dataset.\n\n", term.Bold(name))
	if license == "" {
		b.WriteString("This dataset has " + term.Bold("no license") + ".\n")
	} else {
		fmt.Fprintf(&b, "This dataset is licensed under the %s license.\n", term.Bold(license))
	}
	b.WriteString("\n")
	if citation == "" {
		b.WriteString("This dataset has " + term.Bold("no associated citation") + ".\n")
	} else {
		b.WriteString("When using this dataset, please cite the following:\n\n")
		b.WriteString(strings.TrimRight(citation, "\n") + "\n")
	}
	if docs != "" {
		fmt.Fprintf(&b, "\nYou can find additional information about this dataset at:\n%s\n", docs)
	}
	b.WriteString(strings.Repeat("=", copyrightWidth) + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func (s *Tables) citationFields(name string) (license, citation string) {
	entry, ok := s.Citation(name)
	if !ok {
		return "", ""
	}
	if v, ok := entry.Get("license"); ok {
		license, _ = v.(string)
	}
	if v, ok := entry.Get("citation"); ok {
		citation, _ = v.(string)
	}
	return license, citation
}
