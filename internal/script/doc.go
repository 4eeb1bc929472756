// Package script embeds a Lua runtime that acts as the post-collection merge
// point of the content pipeline.
//
// Scripts found under the modules root run in a fresh Lua state on every
// load. They see a global `Core` table:
//
//	Core.print(...)                                  -- logs through the host logger
//	Core.Events.PostDeserializationEvents            -- functions run after all scripts
//	Core.InitializationInfo.GameData[module][name]   -- extra declarations
//	Core.GameInfo.<Category>.Identifiers.get(key)    -- "source:name" -> id
//	Core.GameInfo.<Category>.Types.get(id)           -- id -> record table
//
// Declarations placed in GameData use the same schema as declaration files;
// they are converted to HCL JSON syntax and decoded by the HCL decoder. The
// GameInfo functions always read the registry that is current at call time.
package script
