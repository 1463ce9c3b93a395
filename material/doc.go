// Package material provides shading definition assets parsed from HCL
// documents.
//
// One document defines any number of materials:
//
//	material "bricks" {
//	  diffuse   = "bricks_d"
//	  normal    = "bricks_n"
//	  shininess = 32
//	  tint      = [1.0, 0.95, 0.9]
//
//	  params {
//	    roughness = 0.7
//	    metallic  = 0.1
//	  }
//	}
//
// diffuse names the diffuse texture and is required; everything else
// is optional. The params block carries free-form shader uniforms as
// cty values. Texture names are references resolved by the consumer,
// not by this package.
//
// Because one resource fans out into many named assets, materials
// reconcile per document rather than per asset: a changed document
// re-parses and syncs against the table (adding, updating in place,
// and removing names), and a deleted document drops every material it
// produced. A document that fails to parse, during load or refresh,
// keeps whatever it previously produced.
package material
