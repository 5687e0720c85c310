package builtin

import (
	"viewcast/internal/registry"
)

const (
	PluginName    = "builtin"
	PluginVersion = "0.1.0"
)

// Plugin returns the reference plugin with all formats and transformers
// registered.
func Plugin() *registry.Plugin {
	p := registry.NewPlugin(PluginName, PluginVersion)

	p.RegisterFormat(
		IntSequenceFormat,
		MappingFormat,
		SingleIntFormat,
		IntSequenceDirectoryFormat,
		MappingDirectoryFormat,
		FourIntsDirectoryFormat,
	)

	// writers
	p.RegisterTransformer(intsType, FourIntsDirectoryFormat.ViewType(), registry.Typed(intsToFourInts))
	p.RegisterTransformer(intType, SingleIntFormat.ViewType(), registry.Typed(intToSingleInt))
	p.RegisterTransformer(intsType, IntSequenceDirectoryFormat.ViewType(), registry.Typed(intsToIntSequenceDirectory))
	p.RegisterTransformer(intsType, IntSequenceFormat.ViewType(), registry.Typed(intsToIntSequence))
	p.RegisterTransformer(mappingType, MappingDirectoryFormat.ViewType(), registry.Typed(mappingToMappingDirectory))
	p.RegisterTransformer(mappingType, MappingFormat.ViewType(), registry.Typed(mappingToMapping))

	// readers
	p.RegisterTransformer(FourIntsDirectoryFormat.ViewType(), intsType, registry.Typed(fourIntsToInts))
	p.RegisterTransformer(SingleIntFormat.ViewType(), intType, registry.Typed(singleIntToInt))
	p.RegisterTransformer(IntSequenceFormat.ViewType(), intsType, registry.Typed(intSequenceToInts))
	p.RegisterTransformer(MappingFormat.ViewType(), mappingType, registry.Typed(mappingToMap))
	p.RegisterTransformer(MappingDirectoryFormat.ViewType(), mappingType, registry.Typed(mappingDirectoryToMap))

	return p
}
