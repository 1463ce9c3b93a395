// Package animation loads procedural animation clips into the
// registry's clip table.
//
// Clips arrive from two sources. Scene files may carry clips next to
// their meshes; the mesh loader extracts those and hands them over as
// [mesh.ClipSource] values, each sharing its scene's store handle so a
// change to the scene refreshes meshes and clips together. Standalone
// clip documents are JSON files of the form
//
//	{
//	  "name": "walk",
//	  "duration": 1.5,
//	  "tracks": [
//	    {
//	      "target": "hip",
//	      "channel": "translation",
//	      "keys": [
//	        {"time": 0, "value": [0, 0, 0]},
//	        {"time": 0.75, "value": [0, 1, 0]}
//	      ]
//	    }
//	  ]
//	}
//
// A document missing "name" registers under the file's base name. A
// missing or zero "duration" is computed from the latest keyframe.
// Keys are sorted by time on load. A document without tracks, or a
// track without keys, rejects the whole document.
//
// The clip table reconciles entry by entry like meshes and textures: a
// dirty resource re-parses (documents) or re-decodes (scenes) in
// place, and a clip whose backing file vanished is removed. A clip
// that vanished from a scene which still exists is kept with its
// previous keys; single-clip scenes rebind across a clip rename the
// same way single-mesh files do.
package animation
