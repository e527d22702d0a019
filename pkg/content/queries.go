package content

// Queries against the hosted document store. Drafts are always excluded and
// listings are ordered newest first.
const (
	AllPostsQuery = `*[_type == "post" && !(_id in path("drafts.**"))]
| order(publishedAt desc) {
  _id,
  title,
  excerpt,
  "slug": slug.current,
  author->{ name },
  publishedAt,
  readTime,
  categories[]->{ title },
  "imageUrl": mainImage.asset->url,
  body
}`

	PostBySlugQuery = `*[_type == "post" && slug.current == $slug && !(_id in path("drafts.**"))][0] {
  _id,
  title,
  excerpt,
  "slug": slug.current,
  author->{ name },
  publishedAt,
  readTime,
  categories[]->{ title },
  "imageUrl": mainImage.asset->url,
  body
}`

	// RelatedPostsQuery omits the body.
	RelatedPostsQuery = `*[
  _type == "post"
  && !(_id in path("drafts.**"))
  && count((categories[]->{title})[title == $categoryTitle]) > 0
  && _id != $currentId
]
| order(publishedAt desc)[0...$limit] {
  _id,
  title,
  excerpt,
  "slug": slug.current,
  author->{ name },
  publishedAt,
  readTime,
  categories[]->{ title },
  "imageUrl": mainImage.asset->url
}`
)
