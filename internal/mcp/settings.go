// Package mcp provides the MCP server exposing the search tools.
package mcp

import (
	"github.com/Laisky/searxng-mcp/library/config"
)

const (
	toolSearch        = "search"
	toolSearchMedia   = "search_media"
	toolResearchTopic = "research_topic"
)

// ToolsSettings captures runtime configuration for enabling or disabling individual MCP tools.
type ToolsSettings struct {
	SearchEnabled        bool
	SearchMediaEnabled   bool
	ResearchTopicEnabled bool
}

// AllToolsEnabled returns settings with every tool switched on.
func AllToolsEnabled() ToolsSettings {
	return ToolsSettings{
		SearchEnabled:        true,
		SearchMediaEnabled:   true,
		ResearchTopicEnabled: true,
	}
}

// LoadToolsSettingsFromConfig reads the MCP tools configuration from the shared config.
// By default, all tools are enabled unless explicitly disabled in the configuration.
func LoadToolsSettingsFromConfig() ToolsSettings {
	return LoadToolsSettings(config.SharedGetter)
}

// LoadToolsSettings reads the MCP tools configuration through get.
func LoadToolsSettings(get config.Getter) ToolsSettings {
	return ToolsSettings{
		SearchEnabled:        config.Bool(get, toolEnabledKey(toolSearch), true),
		SearchMediaEnabled:   config.Bool(get, toolEnabledKey(toolSearchMedia), true),
		ResearchTopicEnabled: config.Bool(get, toolEnabledKey(toolResearchTopic), true),
	}
}

// EnabledToolNames lists the tools the settings switch on, in registration order.
func (s ToolsSettings) EnabledToolNames() []string {
	var names []string
	if s.SearchEnabled {
		names = append(names, toolSearch)
	}
	if s.SearchMediaEnabled {
		names = append(names, toolSearchMedia)
	}
	if s.ResearchTopicEnabled {
		names = append(names, toolResearchTopic)
	}
	return names
}

func toolEnabledKey(name string) string {
	return "mcp.tools." + name + ".enabled"
}
