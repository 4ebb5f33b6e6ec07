// Package outlet stores named row templates authored outside Go code and
// adapts them into card row templates. Templates use pongo2 (Django-style)
// syntax and are rendered with the row context bound under `item`, `index`,
// `type` and `deleteAction`.
//
//	<div class="row">{{ item.firstName }}
//	  <form method="post" action="{{ deleteAction }}"><button value="{{ item.id }}">x</button></form>
//	</div>
package outlet
