// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package library

import (
	"time"

	"github.com/pdiddy/research-hub/pkg/types"
)

// defaultPapers is the collection a fresh install starts with.
func defaultPapers() []types.Paper {
	return []types.Paper{
		{
			ID:        "p1",
			Title:     "Attention Is All You Need",
			Authors:   []string{"Vaswani", "Shazeer", "Parmar"},
			Year:      2017,
			Abstract:  "The dominant sequence transduction models are based on complex recurrent or convolutional neural networks...",
			Citations: 125000,
			URL:       "",
			Tags:      []string{"transformer", "nlp"},
			AddedAt:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:        "p2",
			Title:     "ImageNet Classification with Deep CNNs",
			Authors:   []string{"Krizhevsky", "Sutskever", "Hinton"},
			Year:      2012,
			Abstract:  "We trained a large, deep convolutional neural network to classify the 1.2 million high-resolution images...",
			Citations: 110000,
			URL:       "",
			Tags:      []string{"cv", "cnn"},
			AddedAt:   time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		},
	}
}

// defaultWorkspaces is the workspace list a fresh install starts with.
func defaultWorkspaces() []types.Workspace {
	return []types.Workspace{
		{
			ID:          "1",
			Name:        "Neural Networks",
			Description: "Deep learning and architecture research",
			PaperIDs:    []string{"p1", "p2"},
			CreatedAt:   time.Date(2023, 10, 1, 0, 0, 0, 0, time.UTC),
			Color:       "bg-indigo-500",
		},
	}
}
